package public

import (
	"errors"
	"strconv"

	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/repository"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the active catalog, paged.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no se pudo obtener el catalogo", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetProduct returns one product by id or reference code.
func (h *Handler) GetProduct(c *gin.Context) {
	raw := c.Param("id")
	if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
		product, err := h.ProductService.Get(uint(id))
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				response.NotFound(c, service.ErrProductNotFound.Error())
				return
			}
			respondError(c, response.CodeInternal, "no se pudo obtener el producto", err)
			return
		}
		response.Success(c, product)
		return
	}

	product, err := h.ProductService.GetByModelRef(raw)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, service.ErrProductNotFound.Error())
			return
		}
		respondError(c, response.CodeInternal, "no se pudo obtener el producto", err)
		return
	}
	response.Success(c, product)
}
