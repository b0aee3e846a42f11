package upstream

import (
	"net/http"

	"github.com/archlinux/redirectll"
)

// Handler mounts the forum proxy at the root of the router, so every
// request the redirect middleware lets through reaches the forum.
type Handler struct {
	proxy http.Handler
}

// NewHandler wraps proxy.
func NewHandler(proxy http.Handler) *Handler {
	return &Handler{proxy: proxy}
}

// Routes implements redirectll.Handler.
func (h *Handler) Routes(r redirectll.Router) {
	r.Mount("/", h.proxy)
}

var _ redirectll.Handler = (*Handler)(nil)
