package api

import (
	"context"
	"net/http"

	domsession "example.com/storefront/app/internal/domain/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token" validate:"required"`
	Username string `json:"username"`
	Balance  int64  `json:"balance" validate:"gte=0"`
}

type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

func (g *AuthGateway) Login(ctx context.Context, username, password string) (*domsession.Session, error) {
	var resp loginResponse
	req := request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Username: username, Password: password},
	}
	if err := g.client.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if err := g.client.validate(&resp); err != nil {
		return nil, err
	}
	return &domsession.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Balance:  resp.Balance,
	}, nil
}
