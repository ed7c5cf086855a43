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
	"gorm.io/gorm"
)

func setupPaymentMethodServiceTest(t *testing.T) (*PaymentMethodService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_method_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PaymentMethod{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewPaymentMethodService(repository.NewPaymentMethodRepository(db)), db
}

func TestSavePaymentMethodCardMasksNumber(t *testing.T) {
	svc, db := setupPaymentMethodServiceTest(t)

	view, err := svc.Save(SavePaymentMethodInput{
		CustomerID: 1,
		Type:       "Tarjeta",
		CardNumber: "4111 1111 1111 1234",
		CVV:        "123",
		ExpMonth:   12,
		ExpYear:    2030,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if view.MaskedNumber != "•••• •••• •••• 1234" {
		t.Fatalf("masked number want •••• •••• •••• 1234 got %s", view.MaskedNumber)
	}

	// the raw number is stored digits-only, the CVV never leaves
	var stored models.PaymentMethod
	db.First(&stored, view.ID)
	if stored.CardNumber != "4111111111111234" {
		t.Fatalf("stored number want digits only, got %s", stored.CardNumber)
	}
	if stored.CVV != "123" {
		t.Fatalf("stored cvv want 123 got %s", stored.CVV)
	}
}

func TestSavePaymentMethodCardValidations(t *testing.T) {
	svc, _ := setupPaymentMethodServiceTest(t)

	cases := []struct {
		name  string
		input SavePaymentMethodInput
		want  error
	}{
		{
			name:  "short number",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "tarjeta", CardNumber: "4111", CVV: "123", ExpMonth: 1, ExpYear: 2030},
			want:  ErrInvalidCardNumber,
		},
		{
			name:  "bad cvv",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "tarjeta", CardNumber: "411111111111111", CVV: "12a", ExpMonth: 1, ExpYear: 2030},
			want:  ErrInvalidCVV,
		},
		{
			name:  "cvv too long",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "tarjeta", CardNumber: "411111111111111", CVV: "12345", ExpMonth: 1, ExpYear: 2030},
			want:  ErrInvalidCVV,
		},
		{
			name:  "month out of range",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "tarjeta", CardNumber: "411111111111111", CVV: "123", ExpMonth: 13, ExpYear: 2030},
			want:  ErrInvalidExpiry,
		},
		{
			name:  "missing year",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "tarjeta", CardNumber: "411111111111111", CVV: "123", ExpMonth: 6},
			want:  ErrInvalidExpiry,
		},
		{
			name:  "unknown type",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "efectivo"},
			want:  ErrInvalidMethodType,
		},
		{
			name:  "bad paypal email",
			input: SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "sin-arroba"},
			want:  ErrInvalidPaypalEmail,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Save(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestSavePaymentMethodPrimaryDemotesPrevious(t *testing.T) {
	svc, db := setupPaymentMethodServiceTest(t)

	first, err := svc.Save(SavePaymentMethodInput{
		CustomerID:  1,
		Type:        "paypal",
		PaypalEmail: "uno@example.com",
		IsPrimary:   true,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := svc.Save(SavePaymentMethodInput{
		CustomerID:  1,
		Type:        "paypal",
		PaypalEmail: "dos@example.com",
		IsPrimary:   true,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var stored models.PaymentMethod
	db.First(&stored, first.ID)
	if stored.IsPrimary {
		t.Fatalf("first method should be demoted")
	}
	stored = models.PaymentMethod{}
	db.First(&stored, second.ID)
	if !stored.IsPrimary {
		t.Fatalf("second method should be primary")
	}
}

func TestUpdatePaymentMethodRevalidatesAndClearsOldType(t *testing.T) {
	svc, db := setupPaymentMethodServiceTest(t)

	created, err := svc.Save(SavePaymentMethodInput{
		CustomerID: 1,
		Type:       "tarjeta",
		CardNumber: "4111111111111234",
		CVV:        "123",
		ExpMonth:   12,
		ExpYear:    2030,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := svc.Update(created.ID, SavePaymentMethodInput{
		CustomerID: 1,
		Type:       "tarjeta",
		CardNumber: "corto",
		CVV:        "123",
		ExpMonth:   1,
		ExpYear:    2030,
	}); !errors.Is(err, ErrInvalidCardNumber) {
		t.Fatalf("update with bad number want ErrInvalidCardNumber got %v", err)
	}

	// switching a card to paypal drops the card fields
	view, err := svc.Update(created.ID, SavePaymentMethodInput{
		CustomerID:  1,
		Type:        "paypal",
		PaypalEmail: "nuevo@example.com",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if view.MaskedNumber != "" || view.PaypalEmail != "nuevo@example.com" {
		t.Fatalf("unexpected view after type switch: %+v", view)
	}
	var stored models.PaymentMethod
	db.First(&stored, created.ID)
	if stored.CardNumber != "" || stored.CVV != "" || stored.ExpMonth != 0 {
		t.Fatalf("card fields should be cleared, got %+v", stored)
	}

	if _, err := svc.Update(created.ID, SavePaymentMethodInput{
		CustomerID:  2,
		Type:        "paypal",
		PaypalEmail: "otro@example.com",
	}); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("foreign update want ErrPaymentMethodNotFound got %v", err)
	}
}

func TestMakePrimarySwitchesFlag(t *testing.T) {
	svc, db := setupPaymentMethodServiceTest(t)

	first, _ := svc.Save(SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "a@example.com", IsPrimary: true})
	second, _ := svc.Save(SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "b@example.com"})

	if err := svc.MakePrimary(second.ID, 1); err != nil {
		t.Fatalf("make primary failed: %v", err)
	}
	var stored models.PaymentMethod
	db.First(&stored, first.ID)
	if stored.IsPrimary {
		t.Fatalf("previous primary should be demoted")
	}
	stored = models.PaymentMethod{}
	db.First(&stored, second.ID)
	if !stored.IsPrimary {
		t.Fatalf("promoted method should be primary")
	}

	if err := svc.MakePrimary(second.ID, 99); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("foreign customer must not promote, got %v", err)
	}
}

func TestDeletePaymentMethodScopedToOwner(t *testing.T) {
	svc, _ := setupPaymentMethodServiceTest(t)

	view, err := svc.Save(SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "c@example.com"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.Delete(view.ID, 2); !errors.Is(err, ErrPaymentMethodNotFound) {
		t.Fatalf("foreign delete want ErrPaymentMethodNotFound got %v", err)
	}
	if err := svc.Delete(view.ID, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	views, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("method should be gone, got %+v", views)
	}
}

func TestListPaymentMethodsPrincipalFirst(t *testing.T) {
	svc, _ := setupPaymentMethodServiceTest(t)

	if _, err := svc.Save(SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "x@example.com"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := svc.Save(SavePaymentMethodInput{CustomerID: 1, Type: "paypal", PaypalEmail: "y@example.com", IsPrimary: true}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	views, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 || !views[0].IsPrimary {
		t.Fatalf("principal method should come first, got %+v", views)
	}
	if views[0].Type != constants.PaymentMethodTypePaypal {
		t.Fatalf("type want paypal got %s", views[0].Type)
	}
}
