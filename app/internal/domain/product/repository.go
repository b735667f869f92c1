package product

import "context"

type Gateway interface {
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, text string) ([]Product, error)
}
