package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func seedCartTestProduct(t *testing.T, db *gorm.DB, modelRef string, price string, stock int, active bool) models.Product {
	t.Helper()
	product := models.Product{
		ModelRef: modelRef,
		Name:     "Producto " + modelRef,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:    stock,
		IsActive: active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		// Create drops a zero-value IsActive because of the column's
		// default:true tag, so deactivate with an explicit update.
		if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func TestUpsertCartCreatesCartAndMergesQuantities(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	db := models.DB
	product := seedCartTestProduct(t, db, "CART-001", "15.00", 10, true)

	cart, created, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if !created {
		t.Fatalf("first upsert should create the cart")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("want one line of 2, got %+v", cart.Items)
	}

	// merging sums quantities for the same product
	cart, created, err = svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 3}})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Fatalf("second upsert should reuse the open cart")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("want merged quantity 5, got %+v", cart.Items)
	}
}

func TestUpsertCartCapsAtStock(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	product := seedCartTestProduct(t, models.DB, "CART-002", "15.00", 4, true)

	cart, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 3}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", cart.Items[0].Quantity)
	}

	cart, _, err = svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 5}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("merged quantity should cap at stock 4, got %d", cart.Items[0].Quantity)
	}
}

func TestUpsertCartSkipsUnknownAndInactiveProducts(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	db := models.DB
	active := seedCartTestProduct(t, db, "CART-003", "10.00", 10, true)
	inactive := seedCartTestProduct(t, db, "CART-004", "10.00", 10, false)

	cart, _, err := svc.UpsertCart(1, []CartLineInput{
		{ProductID: active.ID, Quantity: 1},
		{ProductID: inactive.ID, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != active.ID {
		t.Fatalf("only the active known product should remain, got %+v", cart.Items)
	}
}

func TestUpsertCartResolvesByModelRef(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	product := seedCartTestProduct(t, models.DB, "CART-REF-9", "10.00", 10, true)

	cart, _, err := svc.UpsertCart(1, []CartLineInput{{ModelRef: "CART-REF-9", Quantity: 2}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != product.ID {
		t.Fatalf("line should resolve by reference code, got %+v", cart.Items)
	}
}

func TestUpsertCartNegativeQuantityRemovesLine(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	product := seedCartTestProduct(t, models.DB, "CART-005", "10.00", 10, true)

	if _, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 2}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	cart, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: -5}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("line should be removed, got %+v", cart.Items)
	}
}

func TestUpsertCartRefreshesStalePrices(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	db := models.DB
	product := seedCartTestProduct(t, db, "CART-006", "10.00", 10, true)

	if _, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", "12.50")

	// an empty merge still re-pins every line
	cart, _, err := svc.UpsertCart(1, nil)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unit price want 12.50 got %s", cart.Items[0].UnitPrice)
	}
}

func TestGetOpenCartPurgesDeactivatedProducts(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	db := models.DB
	product := seedCartTestProduct(t, db, "CART-007", "10.00", 10, true)

	if _, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false)

	cart, err := svc.GetOpenCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("deactivated line should be purged, got %+v", cart.Items)
	}
}

func TestSetLineQuantityCapsAndDeletes(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	product := seedCartTestProduct(t, models.DB, "CART-008", "10.00", 3, true)

	if _, _, err := svc.UpsertCart(1, []CartLineInput{{ProductID: product.ID, Quantity: 1}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	cart, err := svc.SetLineQuantity(1, product.ID, 99)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("quantity should cap at stock 3, got %d", cart.Items[0].Quantity)
	}

	cart, err = svc.SetLineQuantity(1, product.ID, 0)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("zero quantity should delete the line, got %+v", cart.Items)
	}
}

func TestSetLineQuantityWithoutCartFails(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	if _, err := svc.SetLineQuantity(1, 1, 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("want ErrCartNotFound got %v", err)
	}
}

func TestGetOpenCartIgnoresClosedCarts(t *testing.T) {
	svc, _ := setupCartServiceTest(t)
	db := models.DB
	closed := models.Cart{CustomerID: 1, Status: constants.CartStatusClosed}
	if err := db.Create(&closed).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	cart, err := svc.GetOpenCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("closed cart should not be returned, got %+v", cart)
	}
}
