package main

import (
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the catalog and a demo customer so a fresh install has
// something to browse. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			ModelRef:    "LP-4310",
			Name:        "Portatil UltraSlim 14",
			Description: "Portatil de 14 pulgadas, 16 GB RAM, 512 GB SSD.",
			Price:       money("899.99"),
			Stock:       25,
			IsActive:    true,
		},
		{
			ModelRef:    "TL-2200",
			Name:        "Teclado mecanico compacto",
			Description: "Teclado mecanico 65% con switches rojos.",
			Price:       money("79.90"),
			Stock:       120,
			IsActive:    true,
		},
		{
			ModelRef:    "MN-2710",
			Name:        "Monitor 27 QHD",
			Description: "Monitor IPS de 27 pulgadas, 2560x1440, 75 Hz.",
			Price:       money("249.00"),
			Stock:       40,
			IsActive:    true,
		},
		{
			ModelRef:    "AU-0042",
			Name:        "Auriculares inalambricos",
			Description: "Auriculares con cancelacion de ruido, 30 h de bateria.",
			Price:       money("129.50"),
			Stock:       80,
			IsActive:    true,
		},
		{
			ModelRef:    "CB-USBC-2M",
			Name:        "Cable USB-C 2 m",
			Description: "Cable USB-C a USB-C, carga rapida 100 W.",
			Price:       money("12.99"),
			Stock:       500,
			IsActive:    true,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("model_ref = ?", p.ModelRef).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", p.ModelRef, err)
			} else {
				stdLog.Printf("created product: %s", p.ModelRef)
			}
		} else {
			stdLog.Printf("product already exists: %s", p.ModelRef)
		}
	}

	seedCustomer(stdLog.Printf, "cliente@example.com", "cliente123", "Cliente Demo")
}

func seedCustomer(logf func(format string, v ...interface{}), email, password, name string) {
	var existing models.Customer
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		logf("customer already exists: %s", email)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logf("failed to hash password for %s: %v", email, err)
		return
	}
	customer := models.Customer{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         constants.RoleCustomer,
	}
	if err := models.DB.Create(&customer).Error; err != nil {
		logf("failed to create customer %s: %v", email, err)
		return
	}
	logf("created customer: %s", email)
}

func money(value string) models.Money {
	d, _ := decimal.NewFromString(value)
	return models.NewMoneyFromDecimal(d)
}
