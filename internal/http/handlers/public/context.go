package public

import (
	"strconv"
	"strings"

	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const customerIDHeader = "X-Cliente-Id"

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// getCustomerID reads the id the auth middleware placed in the
// context. Responds 401 itself when absent.
func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "customer_id", "id de cliente invalido")
}

// resolveCustomerID accepts either an authenticated token or the
// X-Cliente-Id header, in that order. The cart endpoints work for both
// logged-in customers and header-identified sessions.
func resolveCustomerID(c *gin.Context) (uint, bool) {
	if value, exists := c.Get("customer_id"); exists {
		if id, ok := value.(uint); ok && id != 0 {
			return id, true
		}
	}
	header := strings.TrimSpace(c.GetHeader(customerIDHeader))
	if header != "" {
		if id, err := strconv.ParseUint(header, 10, 64); err == nil && id != 0 {
			return uint(id), true
		}
	}
	response.Unauthorized(c, "Falta X-Cliente-Id o token.")
	return 0, false
}
