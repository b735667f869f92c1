package api

import (
	"context"
	"net/http"

	domcart "example.com/storefront/app/internal/domain/cart"
)

type cartEntryDTO struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int64  `json:"qty" validate:"gte=0"`
}

type CartGateway struct {
	client *Client
}

func NewCartGateway(client *Client) *CartGateway {
	return &CartGateway{client: client}
}

func (g *CartGateway) Fetch(ctx context.Context, token string) ([]domcart.Entry, error) {
	var dtos []cartEntryDTO
	if err := g.client.do(ctx, request{method: http.MethodGet, path: "/cart", token: token}, &dtos); err != nil {
		return nil, err
	}
	return g.toDomain(dtos)
}

// Update sets the quantity of one product and returns the whole cart as the
// backend now holds it.
func (g *CartGateway) Update(ctx context.Context, token string, productID string, qty int64) ([]domcart.Entry, error) {
	var dtos []cartEntryDTO
	req := request{
		method: http.MethodPost,
		path:   "/cart",
		token:  token,
		body:   cartEntryDTO{ProductID: productID, Qty: qty},
	}
	if err := g.client.do(ctx, req, &dtos); err != nil {
		return nil, err
	}
	return g.toDomain(dtos)
}

func (g *CartGateway) toDomain(dtos []cartEntryDTO) ([]domcart.Entry, error) {
	entries := make([]domcart.Entry, 0, len(dtos))
	for i := range dtos {
		if err := g.client.validate(&dtos[i]); err != nil {
			return nil, err
		}
		entries = append(entries, domcart.Entry{ProductID: dtos[i].ProductID, Qty: dtos[i].Qty})
	}
	return entries, nil
}
