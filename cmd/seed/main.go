package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ventas-next/internal/config"
	"github.com/ventas-next/internal/logger"
	"github.com/ventas-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 地理数据：国家 -> 州/省 -> 城市
	geoData := map[string]map[string][]string{
		"Colombia": {
			"Antioquia":       {"Medellín", "Envigado", "Itagüí", "Bello"},
			"Cundinamarca":    {"Bogotá", "Soacha", "Chía"},
			"Valle del Cauca": {"Cali", "Palmira"},
			"Atlántico":       {"Barranquilla", "Soledad"},
		},
		"México": {
			"Jalisco":          {"Guadalajara", "Zapopan"},
			"Ciudad de México": {"Ciudad de México"},
		},
		"Argentina": {
			"Buenos Aires": {"Buenos Aires", "La Plata"},
			"Córdoba":      {"Córdoba"},
		},
	}

	for countryName, states := range geoData {
		var country models.Country
		if err := models.DB.Where("name = ?", countryName).First(&country).Error; err != nil {
			country = models.Country{Name: countryName}
			if err := models.DB.Create(&country).Error; err != nil {
				stdLog.Printf("Failed to create country %s: %v", countryName, err)
				continue
			}
			stdLog.Printf("Created country: %s", countryName)
		}

		for stateName, cities := range states {
			var state models.State
			if err := models.DB.Where("country_id = ? AND name = ?", country.ID, stateName).First(&state).Error; err != nil {
				state = models.State{CountryID: country.ID, Name: stateName}
				if err := models.DB.Create(&state).Error; err != nil {
					stdLog.Printf("Failed to create state %s: %v", stateName, err)
					continue
				}
				stdLog.Printf("Created state: %s / %s", countryName, stateName)
			}

			for _, cityName := range cities {
				var city models.City
				if err := models.DB.Where("state_id = ? AND name = ?", state.ID, cityName).First(&city).Error; err != nil {
					city = models.City{StateID: state.ID, Name: cityName}
					if err := models.DB.Create(&city).Error; err != nil {
						stdLog.Printf("Failed to create city %s: %v", cityName, err)
					}
				}
			}
		}
	}

	// 分类数据
	categoryNames := []string{
		"Frutas", "Verduras", "Lácteos", "Carnes", "Pescados",
		"Panadería", "Bebidas", "Snacks", "Granos", "Aseo",
		"Licores", "Congelados", "Dulces", "Condimentos", "Huevos",
		"Café", "Mascotas", "Cuidado Personal", "Desayuno", "Despensa",
	}

	for i, name := range categoryNames {
		var existing models.Category
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			cat := models.Category{Name: name, SortOrder: (len(categoryNames) - i) * 10}
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", name, err)
			} else {
				stdLog.Printf("Created category: %s", name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", name)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}

	// 商品数据
	products := []struct {
		Name        string
		Description string
		Price       float64
		Stock       float64
		Categories  []string
	}{
		{
			Name:        "Manzana Roja",
			Description: "Manzana roja fresca importada, precio por kilo.",
			Price:       6500,
			Stock:       120,
			Categories:  []string{"Frutas"},
		},
		{
			Name:        "Banano",
			Description: "Banano criollo de Urabá, precio por kilo.",
			Price:       2800,
			Stock:       200,
			Categories:  []string{"Frutas"},
		},
		{
			Name:        "Tomate Chonto",
			Description: "Tomate chonto maduro, ideal para guisos. Precio por kilo.",
			Price:       4200,
			Stock:       80,
			Categories:  []string{"Verduras"},
		},
		{
			Name:        "Leche Entera 1L",
			Description: "Leche entera pasteurizada en bolsa de 1 litro.",
			Price:       3900,
			Stock:       150,
			Categories:  []string{"Lácteos", "Desayuno"},
		},
		{
			Name:        "Queso Campesino 500g",
			Description: "Queso campesino fresco, bloque de 500 gramos.",
			Price:       12500,
			Stock:       40,
			Categories:  []string{"Lácteos"},
		},
		{
			Name:        "Pechuga de Pollo",
			Description: "Pechuga de pollo sin piel, precio por kilo.",
			Price:       16800,
			Stock:       60,
			Categories:  []string{"Carnes"},
		},
		{
			Name:        "Pan Tajado Integral",
			Description: "Pan tajado integral, paquete de 450 gramos.",
			Price:       7200,
			Stock:       90,
			Categories:  []string{"Panadería", "Desayuno"},
		},
		{
			Name:        "Café Molido 500g",
			Description: "Café colombiano tostado y molido, bolsa de 500 gramos.",
			Price:       18900,
			Stock:       70,
			Categories:  []string{"Café", "Despensa"},
		},
		{
			Name:        "Arroz Blanco 5kg",
			Description: "Arroz blanco de primera calidad, bulto de 5 kilos.",
			Price:       21500,
			Stock:       100,
			Categories:  []string{"Granos", "Despensa"},
		},
		{
			Name:        "Huevos AA x30",
			Description: "Cartón de 30 huevos AA.",
			Price:       17800,
			Stock:       55,
			Categories:  []string{"Huevos", "Desayuno"},
		},
		{
			Name:        "Jabón de Loza 500ml",
			Description: "Jabón lavaloza líquido, botella de 500 ml.",
			Price:       6900,
			Stock:       130,
			Categories:  []string{"Aseo"},
		},
		{
			Name:        "Gaseosa Cola 1.5L",
			Description: "Gaseosa sabor cola, botella de 1.5 litros.",
			Price:       5400,
			Stock:       160,
			Categories:  []string{"Bebidas"},
		},
	}

	for i, item := range products {
		var categories []models.Category
		for _, catName := range item.Categories {
			if id, ok := categoryIDs[catName]; ok {
				categories = append(categories, models.Category{ID: id})
			}
		}
		if len(categories) == 0 {
			stdLog.Printf("Skip product %s: categories missing", item.Name)
			continue
		}

		var existing models.Product
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			prod := models.Product{
				Name:        item.Name,
				Description: item.Description,
				PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(item.Price)),
				Stock:       item.Stock,
				IsActive:    true,
				SortOrder:   (len(products) - i) * 10,
				Categories:  categories,
			}
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created product: %s", item.Name)
			}
		} else {
			existing.Description = item.Description
			existing.PriceAmount = models.NewMoneyFromDecimal(decimal.NewFromFloat(item.Price))
			existing.Stock = item.Stock
			existing.IsActive = true
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", item.Name, err)
				continue
			}
			if err := models.DB.Model(&existing).Association("Categories").Replace(categories); err != nil {
				stdLog.Printf("Failed to update product categories %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", item.Name)
			}
		}
	}

	// 默认管理员
	defaultAdminUser := os.Getenv("VENTAS_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("VENTAS_DEFAULT_ADMIN_PASSWORD")
	if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 演示用户（邮箱已验证，归属 Medellín）
	demoEmail := "zulu@yopmail.com"
	var demoUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&demoUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo user password: %v", hashErr)
		} else {
			var cityID *uint
			var medellin models.City
			if err := models.DB.Where("name = ?", "Medellín").First(&medellin).Error; err == nil {
				cityID = &medellin.ID
			}
			now := time.Now()
			demoUser = models.User{
				Email:           demoEmail,
				PasswordHash:    string(hash),
				Document:        "1036400001",
				FirstName:       "Juan",
				LastName:        "Zuluaga",
				Address:         "Calle 10 # 43-12",
				PhoneNumber:     "+57 300 123 4567",
				CityID:          cityID,
				Locale:          "es",
				Status:          "active",
				EmailVerifiedAt: &now,
			}
			if err := models.DB.Create(&demoUser).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", demoEmail)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Countries with states and cities")
	fmt.Println("- 20 Categories")
	fmt.Println("- 12 Products")
	fmt.Println("- Default admin account")
	fmt.Println("- Demo user: zulu@yopmail.com / 123456")
}
