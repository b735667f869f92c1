package api

import (
	"context"
	"net/http"
	"net/url"

	domproduct "example.com/storefront/app/internal/domain/product"
)

type productDTO struct {
	ID       string  `json:"_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Cost     int64   `json:"cost" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	Image    string  `json:"image"`
}

type ProductGateway struct {
	client *Client
}

func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

func (g *ProductGateway) List(ctx context.Context) ([]domproduct.Product, error) {
	var dtos []productDTO
	if err := g.client.do(ctx, request{method: http.MethodGet, path: "/products"}, &dtos); err != nil {
		return nil, err
	}
	return g.toDomain(dtos)
}

// Search asks the backend for products whose name or category matches text.
// The backend answers 404 when nothing matches.
func (g *ProductGateway) Search(ctx context.Context, text string) ([]domproduct.Product, error) {
	var dtos []productDTO
	req := request{
		method: http.MethodGet,
		path:   "/products/search",
		query:  url.Values{"value": {text}},
	}
	if err := g.client.do(ctx, req, &dtos); err != nil {
		return nil, err
	}
	return g.toDomain(dtos)
}

func (g *ProductGateway) toDomain(dtos []productDTO) ([]domproduct.Product, error) {
	products := make([]domproduct.Product, 0, len(dtos))
	for i := range dtos {
		if err := g.client.validate(&dtos[i]); err != nil {
			return nil, err
		}
		d := dtos[i]
		products = append(products, domproduct.Product{
			ID:       d.ID,
			Name:     d.Name,
			Category: d.Category,
			Cost:     d.Cost,
			Rating:   d.Rating,
			ImageURL: d.Image,
		})
	}
	return products, nil
}
