package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewProductService(repository.NewProductRepository(db)), db
}

func TestCreateProductValidatesAndTrims(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{ModelRef: "  ", Name: "Algo"}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("blank model ref want ErrInvalidProduct got %v", err)
	}
	if _, err := svc.Create(ProductInput{ModelRef: "PR-1", Name: ""}); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("blank name want ErrInvalidProduct got %v", err)
	}

	product, err := svc.Create(ProductInput{
		ModelRef: "  PR-1  ",
		Name:     "  Monitor  ",
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString("249.00")),
		Stock:    5,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ModelRef != "PR-1" || product.Name != "Monitor" {
		t.Fatalf("fields should be trimmed, got %q %q", product.ModelRef, product.Name)
	}
	if !product.IsActive {
		t.Fatalf("products default to active")
	}
}

func TestUpdateProductKeepsBlankIdentity(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{ModelRef: "PR-2", Name: "Teclado", Stock: 10})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(created.ID, ProductInput{
		Name:     "",
		ModelRef: "",
		Stock:    3,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ModelRef != "PR-2" || updated.Name != "Teclado" {
		t.Fatalf("blank inputs must not erase identity, got %q %q", updated.ModelRef, updated.Name)
	}
	if updated.Stock != 3 || updated.IsActive {
		t.Fatalf("stock and active flag should update, got stock=%d active=%v", updated.Stock, updated.IsActive)
	}

	if _, err := svc.Update(99999, ProductInput{Name: "X"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}

func TestGetAndDeleteProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	created, err := svc.Create(ProductInput{ModelRef: "PR-3", Name: "Cable"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil || got.ModelRef != "PR-3" {
		t.Fatalf("get failed: %v %+v", err, got)
	}
	byRef, err := svc.GetByModelRef("PR-3")
	if err != nil || byRef.ID != created.ID {
		t.Fatalf("get by ref failed: %v %+v", err, byRef)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product want ErrProductNotFound got %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("double delete want ErrProductNotFound got %v", err)
	}
}

func TestListProductsClampsPagination(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	for i := 0; i < 25; i++ {
		if _, err := svc.Create(ProductInput{ModelRef: fmt.Sprintf("PR-L%02d", i), Name: "Item"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	products, total, err := svc.List(repository.ProductListFilter{Page: 0, PageSize: -1, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("total want 25 got %d", total)
	}
	if len(products) != 20 {
		t.Fatalf("default page size want 20 got %d", len(products))
	}

	products, _, err = svc.List(repository.ProductListFilter{Page: 2, PageSize: 20, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("second page want 5 got %d", len(products))
	}
}
