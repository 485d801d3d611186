package api

import (
	"context"

	"github.com/medibook/medibook-cli/internal/model"
)

// Login exchanges credentials for a token pair. The server also echoes the
// role and username the session store needs.
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	req := model.LoginRequest{Username: username, Password: password}
	var resp model.TokenResponse
	if err := c.post(ctx, "/token/", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) error {
	return c.post(ctx, "/api/register/", req, nil)
}
