package service

import (
	"strings"

	"github.com/tienda-next/internal/constants"
)

// legacyStatusAliases folds the Spanish labels written by earlier
// imports into the canonical lowercase set. Keys are lowercase.
var legacyStatusAliases = map[string]string{
	"pagada":     constants.OrderStatusPaid,
	"pagado":     constants.OrderStatusPaid,
	"enviada":    constants.OrderStatusShipped,
	"enviado":    constants.OrderStatusShipped,
	"completada": constants.OrderStatusCompleted,
	"completado": constants.OrderStatusCompleted,
	"cancelada":  constants.OrderStatusCanceled,
	"cancelado":  constants.OrderStatusCanceled,
}

// NormalizeOrderStatus maps any accepted status spelling onto the
// canonical value. Unknown input is returned trimmed and lowercased.
func NormalizeOrderStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	switch normalized {
	case constants.OrderStatusPaid,
		constants.OrderStatusShipped,
		constants.OrderStatusCompleted,
		constants.OrderStatusCanceled:
		return normalized
	}
	if canonical, ok := legacyStatusAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// allowedTransitions lists the forward moves of the order lifecycle.
// Cancel is handled separately because its preconditions carry their
// own error messages.
var allowedTransitions = map[string][]string{
	constants.OrderStatusPaid:    {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped: {constants.OrderStatusShipped, constants.OrderStatusCompleted},
}

// CanTransition reports whether an order may move between two statuses.
func CanTransition(from, to string) bool {
	targets, ok := allowedTransitions[NormalizeOrderStatus(from)]
	if !ok {
		return false
	}
	normalizedTo := NormalizeOrderStatus(to)
	for _, target := range targets {
		if target == normalizedTo {
			return true
		}
	}
	return false
}
