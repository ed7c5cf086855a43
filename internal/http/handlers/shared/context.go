package shared

import (
	"github.com/tienda-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads an uint value placed in the context by the auth
// middleware, writing the error response itself on failure.
func GetContextUint(c *gin.Context, key, invalidMsg string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "no autorizado", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidMsg, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidMsg, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, invalidMsg, nil)
		return 0, false
	}
}
