package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmcruz/barberbook/internal/shopctx"
)

// requireShop middleware binds the shop slug from the route into the
// request context. Widget endpoints are meaningless without a shop.
func requireShop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "shop"))
		if slug == "" {
			http.Error(w, "missing shop slug", http.StatusBadRequest)
			return
		}
		ctx := shopctx.WithShop(r.Context(), slug)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
