package cart

import "context"

type Gateway interface {
	Fetch(ctx context.Context, token string) ([]Entry, error)
	Update(ctx context.Context, token string, productID string, qty int64) ([]Entry, error)
}
