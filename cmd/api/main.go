package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Inventory{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	); err != nil {
		log.Fatal(err)
	}

	//同一注文にアクティブな支払いは1件まで（部分ユニークはAutoMigrateでは張れない）
	if err := gormDB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_active_order
		 ON payments (order_id)
		 WHERE status IN ('pending', 'processing')`,
	).Error; err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, inventoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager, addressRepo)
	paymentUC := usecase.NewPaymentUsecase(txManager)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)
	paymentH := handler.NewPaymentHandler(paymentUC)

	//Server起動
	e := server.New(cfg, cartH, orderH, paymentH)

	addr := ":" + cfg.Port
	if err := server.Start(addr, e); err != nil {
		log.Fatal(err)
	}
}
