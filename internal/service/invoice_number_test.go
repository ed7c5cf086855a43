package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceNumberTest(t *testing.T) (*InvoiceNumberGenerator, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:invoice_number_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewInvoiceNumberGenerator(repository.NewInvoiceRepository(db), ""), db
}

var invoiceNumberTestOrderID atomic.Uint64

func createTestInvoice(t *testing.T, db *gorm.DB, invoiceNo string) {
	t.Helper()
	invoice := models.Invoice{OrderID: uint(invoiceNumberTestOrderID.Add(1)), InvoiceNo: invoiceNo, IssuedAt: time.Now()}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("create invoice failed: %v", err)
	}
}

func TestParseInvoiceNumber(t *testing.T) {
	prefix, number, ok := ParseInvoiceNumber("FAC-EEV-00037")
	if !ok || prefix != "FAC-EEV-" || number != 37 {
		t.Fatalf("want (FAC-EEV-, 37, true) got (%s, %d, %v)", prefix, number, ok)
	}

	prefix, number, ok = ParseInvoiceNumber("A1")
	if !ok || prefix != "A" || number != 1 {
		t.Fatalf("want (A, 1, true) got (%s, %d, %v)", prefix, number, ok)
	}

	if _, _, ok := ParseInvoiceNumber("SIN-NUMERO-"); ok {
		t.Fatalf("numbers without a numeric suffix must not parse")
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber("FAC-EEV-", 7); got != "FAC-EEV-00007" {
		t.Fatalf("want FAC-EEV-00007 got %s", got)
	}
	if got := FormatInvoiceNumber("FAC-EEV-", 123456); got != "FAC-EEV-123456" {
		t.Fatalf("padding must not truncate, got %s", got)
	}
}

func TestInvoiceNumberNextStartsSequence(t *testing.T) {
	gen, _ := setupInvoiceNumberTest(t)
	got, err := gen.Next("")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != "FAC-EEV-00001" {
		t.Fatalf("want FAC-EEV-00001 got %s", got)
	}
}

func TestInvoiceNumberNextHonorsFreeHint(t *testing.T) {
	gen, _ := setupInvoiceNumberTest(t)
	got, err := gen.Next("FAC-EEV-00090")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != "FAC-EEV-00090" {
		t.Fatalf("free hint should be honored, got %s", got)
	}
}

func TestInvoiceNumberNextSkipsTakenHint(t *testing.T) {
	gen, db := setupInvoiceNumberTest(t)
	createTestInvoice(t, db, "FAC-EEV-00005")
	createTestInvoice(t, db, "FAC-EEV-00011")

	got, err := gen.Next("FAC-EEV-00005")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != "FAC-EEV-00012" {
		t.Fatalf("taken hint should advance past the prefix max, got %s", got)
	}
}

func TestInvoiceNumberNextUsesHintPrefix(t *testing.T) {
	gen, db := setupInvoiceNumberTest(t)
	createTestInvoice(t, db, "OTR-00003")

	got, err := gen.Next("OTR-00003")
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if got != "OTR-00004" {
		t.Fatalf("sequence should follow the hint prefix, got %s", got)
	}
}
