package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/repository"
)

var invoiceNumberPattern = regexp.MustCompile(`^(.*?)(\d+)$`)

// ParseInvoiceNumber splits an invoice number into its prefix and
// numeric suffix. Numbers without a trailing numeric part report ok
// false.
func ParseInvoiceNumber(invoiceNo string) (prefix string, number int, ok bool) {
	trimmed := strings.TrimSpace(invoiceNo)
	matches := invoiceNumberPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return "", 0, false
	}
	parsed, err := strconv.Atoi(matches[2])
	if err != nil {
		return "", 0, false
	}
	return matches[1], parsed, true
}

// FormatInvoiceNumber joins a prefix and sequence using the fixed
// zero padded width.
func FormatInvoiceNumber(prefix string, number int) string {
	return fmt.Sprintf("%s%0*d", prefix, constants.InvoiceNumberDigits, number)
}

// InvoiceNumberGenerator produces invoice numbers from the stored
// sequence. Uniqueness is enforced by the invoice_no unique index; the
// checkout transaction retries on a duplicate key collision.
type InvoiceNumberGenerator struct {
	invoiceRepo repository.InvoiceRepository
	prefix      string
}

// NewInvoiceNumberGenerator creates a generator with the configured
// default prefix.
func NewInvoiceNumberGenerator(invoiceRepo repository.InvoiceRepository, prefix string) *InvoiceNumberGenerator {
	if strings.TrimSpace(prefix) == "" {
		prefix = constants.DefaultInvoicePrefix
	}
	return &InvoiceNumberGenerator{invoiceRepo: invoiceRepo, prefix: prefix}
}

// WithRepo rebinds the generator onto a transaction scoped repository.
func (g *InvoiceNumberGenerator) WithRepo(invoiceRepo repository.InvoiceRepository) *InvoiceNumberGenerator {
	return &InvoiceNumberGenerator{invoiceRepo: invoiceRepo, prefix: g.prefix}
}

// Next returns the invoice number for a new order. A desired number is
// honored when still free; otherwise the next sequence value for its
// prefix is used. An empty hint draws from the default prefix.
func (g *InvoiceNumberGenerator) Next(desired string) (string, error) {
	desired = strings.TrimSpace(desired)
	if desired != "" {
		taken, err := g.invoiceRepo.ExistsByNumber(desired)
		if err != nil {
			return "", err
		}
		if !taken {
			return desired, nil
		}
	}

	prefix := g.prefix
	if desired != "" {
		if parsedPrefix, _, ok := ParseInvoiceNumber(desired); ok {
			prefix = parsedPrefix
		}
	}

	numbers, err := g.invoiceRepo.ListNumbersByPrefix(prefix)
	if err != nil {
		return "", err
	}
	maxSeq := 0
	for _, number := range numbers {
		if p, seq, ok := ParseInvoiceNumber(number); ok && p == prefix && seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatInvoiceNumber(prefix, maxSeq+1), nil
}
