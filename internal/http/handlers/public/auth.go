package public

import (
	"errors"

	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Register creates a customer account and returns a fresh token.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	result, err := h.CustomerAuthService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			response.BadRequest(c, err.Error())
		default:
			respondError(c, response.CodeInternal, "no se pudo registrar la cuenta", err)
		}
		return
	}
	response.Success(c, result)
}

// Login authenticates a customer and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de solicitud invalido")
		return
	}
	result, err := h.CustomerAuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		respondError(c, response.CodeInternal, "no se pudo iniciar sesion", err)
		return
	}
	response.Success(c, result)
}

// Profile returns the authenticated customer's own record.
func (h *Handler) Profile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerRepo.GetByID(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo obtener el perfil", err)
		return
	}
	if customer == nil {
		response.NotFound(c, "cliente no encontrado")
		return
	}
	response.Success(c, customer)
}
