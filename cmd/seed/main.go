package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	"github.com/marivelle/catalog-backend/pkg/env"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/security"
)

// Seeds the initial superuser plus a handful of demo catalog rows so a
// fresh environment is immediately browsable. Every insert is
// idempotent: existing rows are left untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	conn := dbClient.DB().WithContext(ctx)

	requireResource(ctx, logg, "superuser seed", seedSuperuser(conn, cfg, logg))
	requireResource(ctx, logg, "category seed", seedCategories(conn))
	requireResource(ctx, logg, "product seed", seedProducts(conn))
	requireResource(ctx, logg, "settings seed", seedSettings(conn))

	logg.Info(ctx, "seed complete")
}

func seedSuperuser(conn *gorm.DB, cfg *config.Config, logg *logger.Logger) error {
	email := env.Get("CATALOG_SEED_SUPERUSER_EMAIL", "admin@example.com")
	password := env.Get("CATALOG_SEED_SUPERUSER_PASSWORD", "admin123")

	var existing models.User
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logg.Info(context.Background(), "superuser already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Admin User",
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := conn.Create(&user).Error; err != nil {
		return err
	}
	logg.Info(context.Background(), "superuser created")
	return nil
}

func seedCategories(conn *gorm.DB) error {
	seeds := []models.Category{
		{Name: "Men", Slug: "men", ImageURL: strPtr("https://example.com/men.jpg")},
		{Name: "Women", Slug: "women", ImageURL: strPtr("https://example.com/women.jpg")},
		{Name: "Kids", Slug: "kids", ImageURL: strPtr("https://example.com/kids.jpg")},
	}
	for i := range seeds {
		var existing models.Category
		err := conn.Where("slug = ?", seeds[i].Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		seeds[i].IsActive = true
		if err := conn.Create(&seeds[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(conn *gorm.DB) error {
	var women models.Category
	if err := conn.Where("slug = ?", "women").First(&women).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var existing models.Product
	err := conn.Where("slug = ?", "floral-summer-dress").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	product := models.Product{
		Name:        "Floral Summer Dress",
		Slug:        "floral-summer-dress",
		Description: "Beautiful floral dress for summer.",
		BasePrice:   decimal.NewFromFloat(49.99),
		IsActive:    true,
		CategoryID:  &women.ID,
		Variants: []models.ProductVariant{
			{SKU: "FSD-S", Size: "S", Color: "Red", StockQuantity: 10},
			{SKU: "FSD-M", Size: "M", Color: "Red", StockQuantity: 15},
		},
		Images: []models.ProductImage{
			{ImageURL: "https://example.com/dress1.jpg", IsPrimary: true},
			{ImageURL: "https://example.com/dress2.jpg", IsPrimary: false},
		},
	}
	return conn.Create(&product).Error
}

func seedSettings(conn *gorm.DB) error {
	type defaultSetting struct {
		key, value, valueType, description string
	}
	defaults := []defaultSetting{
		{"store_name", "Marivelle", models.SettingTypeString, "Store display name"},
		{"store_email", "hello@example.com", models.SettingTypeString, "Public contact email"},
		{"currency", "USD", models.SettingTypeString, "ISO currency code"},
		{"currency_symbol", "$", models.SettingTypeString, "Currency symbol shown on prices"},
	}
	for _, d := range defaults {
		var existing models.SiteSetting
		err := conn.Where("key = ?", d.key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		value := d.value
		setting := models.SiteSetting{
			Key:         d.key,
			Value:       &value,
			ValueType:   d.valueType,
			Description: d.description,
			Category:    "general",
		}
		if err := conn.Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
