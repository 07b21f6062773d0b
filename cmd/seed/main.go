package main

import (
	"log"

	"app/internal/domain/model"
	"app/internal/infra/db"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 開発用の初期データ投入。何度流しても同じ結果になるようupsertで書く。

type seedProduct struct {
	sku         string
	name        string
	description string
	price       int64
	salePrice   int64 // 0 = セールなし
	brand       string
	category    string
	weightGrams int
	stock       int64
	images      []string
}

var brands = []model.Brand{
	{Name: "Makita", Slug: "makita"},
	{Name: "Bosch", Slug: "bosch"},
	{Name: "DeWalt", Slug: "dewalt"},
	{Name: "Stanley", Slug: "stanley"},
}

var categories = []model.Category{
	{Name: "Dụng cụ cầm tay", Slug: "dung-cu-cam-tay"},
	{Name: "Máy khoan", Slug: "may-khoan"},
	{Name: "Máy hàn", Slug: "may-han"},
	{Name: "Phụ tùng", Slug: "phu-tung"},
}

var products = []seedProduct{
	{
		sku:         "DRL-001",
		name:        "Máy khoan Makita 13mm",
		description: "Máy khoan động lực Makita 13mm, công suất 650W, tốc độ không tải 0-2800 vòng/phút. Thích hợp cho khoan bê tông, gạch, gỗ và kim loại.",
		price:       1200000,
		salePrice:   1100000,
		brand:       "makita",
		category:    "may-khoan",
		weightGrams: 2500,
		stock:       10,
		images: []string{
			"https://images.unsplash.com/photo-1504148455328-c376907d081c?w=500",
			"https://images.unsplash.com/photo-1572981779307-38b8cabb2407?w=500",
		},
	},
	{
		sku:         "WLD-002",
		name:        "Máy hàn Bosch 200A",
		description: "Máy hàn điện tử Bosch 200A, công nghệ IGBT, hàn que 1.6-4.0mm. Nhỏ gọn, tiết kiệm điện năng.",
		price:       2200000,
		brand:       "bosch",
		category:    "may-han",
		weightGrams: 5000,
		stock:       5,
		images:      []string{"https://images.unsplash.com/photo-1581092918484-8313e1f6e825?w=500"},
	},
	{
		sku:         "DRL-003",
		name:        "Máy khoan pin DeWalt 18V",
		description: "Máy khoan pin DeWalt 18V Li-ion, 2 pin, mô-men xoắn 60Nm. Đầu kẹp tự động 13mm, có chế độ khoan búa.",
		price:       3500000,
		salePrice:   3200000,
		brand:       "dewalt",
		category:    "may-khoan",
		weightGrams: 1800,
		stock:       8,
		images: []string{
			"https://images.unsplash.com/photo-1530124566582-a618bc2615dc?w=500",
			"https://images.unsplash.com/photo-1581092918484-8313e1f6e825?w=500",
		},
	},
	{
		sku:         "HND-004",
		name:        "Bộ dụng cụ Stanley 150 chi tiết",
		description: "Bộ dụng cụ đa năng Stanley 150 chi tiết gồm: tua vít, cờ lê, kìm, búa, đầu khẩu... Vali nhựa chắc chắn.",
		price:       850000,
		brand:       "stanley",
		category:    "dung-cu-cam-tay",
		weightGrams: 4200,
		stock:       15,
		images:      []string{"https://images.unsplash.com/photo-1530124566582-a618bc2615dc?w=500"},
	},
	{
		sku:         "PRT-005",
		name:        "Đầu khoan bê tông Bosch 6-16mm",
		description: "Bộ 10 mũi khoan bê tông Bosch từ 6mm đến 16mm, mũi hợp kim carbide sắc bén, tuổi thọ cao.",
		price:       320000,
		salePrice:   290000,
		brand:       "bosch",
		category:    "phu-tung",
		weightGrams: 800,
		stock:       30,
		images:      []string{"https://images.unsplash.com/photo-1572981779307-38b8cabb2407?w=500"},
	},
	{
		sku:         "PRT-006",
		name:        "Điện cực hàn Makita 2.5mm",
		description: "Điện cực hàn Makita 2.5mm, gói 1kg (khoảng 50 que). Thích hợp cho hàn sắt, thép carbon.",
		price:       75000,
		brand:       "makita",
		category:    "phu-tung",
		weightGrams: 1000,
		stock:       50,
		images:      []string{"https://images.unsplash.com/photo-1581092918484-8313e1f6e825?w=500"},
	},
}

func main() {
	_ = godotenv.Load()

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := seedUsers(gormDB); err != nil {
		log.Fatal(err)
	}

	if err := seedDefaultAddress(gormDB); err != nil {
		log.Fatal(err)
	}

	brandIDs, err := seedBrands(gormDB)
	if err != nil {
		log.Fatal(err)
	}

	categoryIDs, err := seedCategories(gormDB)
	if err != nil {
		log.Fatal(err)
	}

	if err := seedProducts(gormDB, brandIDs, categoryIDs); err != nil {
		log.Fatal(err)
	}

	log.Println("seed done")
}

func seedUsers(gormDB *gorm.DB) error {
	users := []struct {
		email    string
		password string
		fullName string
		phone    string
		role     model.Role
	}{
		{"customer@example.com", "Password123!", "Khách Hàng", "0901234567", model.RoleCustomer},
		{"admin@example.com", "AdminPass123!", "Admin", "0907654321", model.RoleAdmin},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
		if err != nil {
			return err
		}

		rec := model.User{
			ID:           uuid.NewString(),
			Email:        u.email,
			PasswordHash: string(hash),
			FullName:     u.fullName,
			Phone:        u.phone,
			Role:         u.role,
		}
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&rec).Error; err != nil {
			return err
		}
		log.Printf("user: %s", u.email)
	}
	return nil
}

// デモ顧客にデフォルト住所を1件
func seedDefaultAddress(gormDB *gorm.DB) error {
	var customer model.User
	if err := gormDB.Where("email = ?", "customer@example.com").First(&customer).Error; err != nil {
		return err
	}

	var count int64
	if err := gormDB.Model(&model.Address{}).
		Where("user_id = ?", customer.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	addr := model.Address{
		ID:          uuid.NewString(),
		UserID:      customer.ID,
		Label:       "Nhà riêng",
		AddressLine: "123 Lê Lợi",
		City:        "Hồ Chí Minh",
		District:    "Quận 1",
		PostalCode:  "700000",
		Phone:       "0901234567",
		IsDefault:   true,
	}
	if err := gormDB.Create(&addr).Error; err != nil {
		return err
	}

	log.Printf("address: %s", addr.ID)
	return nil
}

func seedBrands(gormDB *gorm.DB) (map[string]string, error) {
	ids := make(map[string]string, len(brands))
	for _, b := range brands {
		b.ID = uuid.NewString()
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&b).Error; err != nil {
			return nil, err
		}

		// DoNothingで既存だった場合に備えて読み直す
		var saved model.Brand
		if err := gormDB.Where("slug = ?", b.Slug).First(&saved).Error; err != nil {
			return nil, err
		}
		ids[b.Slug] = saved.ID
	}
	return ids, nil
}

func seedCategories(gormDB *gorm.DB) (map[string]string, error) {
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		c.ID = uuid.NewString()
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&c).Error; err != nil {
			return nil, err
		}

		var saved model.Category
		if err := gormDB.Where("slug = ?", c.Slug).First(&saved).Error; err != nil {
			return nil, err
		}
		ids[c.Slug] = saved.ID
	}
	return ids, nil
}

func seedProducts(gormDB *gorm.DB, brandIDs, categoryIDs map[string]string) error {
	for _, p := range products {
		brandID := brandIDs[p.brand]
		categoryID := categoryIDs[p.category]
		weight := p.weightGrams

		rec := model.Product{
			ID:          uuid.NewString(),
			SKU:         p.sku,
			Name:        p.name,
			Description: p.description,
			Price:       decimal.NewFromInt(p.price),
			BrandID:     &brandID,
			CategoryID:  &categoryID,
			WeightGrams: &weight,
			IsActive:    true,
		}
		if p.salePrice > 0 {
			rec.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(p.salePrice))
		}

		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoNothing: true,
		}).Create(&rec).Error; err != nil {
			return err
		}

		var saved model.Product
		if err := gormDB.Where("sku = ?", p.sku).First(&saved).Error; err != nil {
			return err
		}

		for i, url := range p.images {
			img := model.ProductImage{
				ID:        uuid.NewString(),
				ProductID: saved.ID,
				URL:       url,
				IsPrimary: i == 0,
				Position:  i,
			}
			if err := gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&img).Error; err != nil {
				return err
			}
		}

		inv := model.Inventory{
			ID:        uuid.NewString(),
			ProductID: saved.ID,
			Quantity:  p.stock,
			Location:  "main-warehouse",
		}
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).Create(&inv).Error; err != nil {
			return err
		}

		log.Printf("product: %s", p.sku)
	}
	return nil
}
