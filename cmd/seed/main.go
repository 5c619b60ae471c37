package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Himanshu1044/inventory-billing-system/internal/config"
	"github.com/Himanshu1044/inventory-billing-system/internal/db"
	"github.com/Himanshu1044/inventory-billing-system/internal/model"
	"github.com/Himanshu1044/inventory-billing-system/internal/repository"
)

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
}

var seedProducts = []seedProduct{
	{"Ballpoint Pen", "Blue ink, pack of 10", "2.00", 100, "stationery"},
	{"Notebook A5", "Ruled, 200 pages", "3.50", 60, "stationery"},
	{"Stapler", "Half strip, 20 sheet capacity", "6.75", 25, "office"},
	{"Desk Lamp", "LED, warm white", "18.99", 12, "electronics"},
	{"USB-C Cable", "1m braided", "7.25", 80, "electronics"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	logger.Info().Msg("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	user, err := userRepo.FindByIdentity(ctx, "demo", "demo@example.com")
	if err == gorm.ErrRecordNotFound {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo-password"), 10)
		if hashErr != nil {
			logger.Fatal().Err(hashErr).Msg("hash password")
		}
		user = &model.User{
			Username:     "demo",
			Email:        "demo@example.com",
			PasswordHash: string(hash),
			BusinessName: "Demo Trading Co",
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal().Err(err).Msg("create demo user")
		}
		logger.Info().Str("username", user.Username).Msg("created demo user")
	} else if err != nil {
		logger.Fatal().Err(err).Msg("lookup demo user")
	}

	seeded := 0
	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			logger.Fatal().Err(err).Str("product", sp.name).Msg("parse price")
		}
		product := &model.Product{
			Name:        sp.name,
			Description: sp.description,
			Price:       price,
			Stock:       sp.stock,
			Category:    sp.category,
			BusinessID:  user.BusinessID,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			logger.Warn().Err(err).Str("product", sp.name).Msg("skipping product")
			continue
		}
		seeded++
	}

	logger.Info().Int("products", seeded).Msg("seed complete")
}
