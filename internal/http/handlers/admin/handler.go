// Package admin exposes the console endpoints: catalog management,
// order oversight, the shipping queues and manual stock adjustments.
// Every route here sits behind the admin JWT middleware.
package admin

import (
	"github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/provider"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}
