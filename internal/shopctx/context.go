package shopctx

import "context"

type ctxKey string

const shopKey ctxKey = "barberbook.shop_slug"

// WithShop stores the shop slug in context.
func WithShop(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, shopKey, slug)
}

// ShopFromContext extracts the shop slug if present.
func ShopFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(shopKey)
	if val == nil {
		return "", false
	}
	slug, ok := val.(string)
	return slug, ok && slug != ""
}
