// Package public serves the storefront API: catalog, cart, checkout,
// stored payment methods, account auth and the chat assistant.
package public

import "github.com/tienda-next/internal/provider"

// Handler is the storefront handler entry point.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
