package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tienda-next/internal/constants"
)

// MaskOrder renders the console display code of an order, for example
// ORD-2024-05-01#00000042.
func MaskOrder(id uint, createdAt time.Time) string {
	return fmt.Sprintf("%s%s#%0*d",
		constants.OrderMaskPrefix,
		createdAt.Format("2006-01-02"),
		constants.OrderMaskIDDigits,
		id,
	)
}

// TryExtractIDFromMask pulls the numeric order id out of a mask search
// term. It accepts a full mask, the part after '#', or a bare number.
func TryExtractIDFromMask(term string) (uint, bool) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return 0, false
	}
	if idx := strings.LastIndex(trimmed, "#"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimLeft(trimmed, "0")
	if trimmed == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
