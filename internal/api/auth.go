package api

import (
	"context"
	"net/http"
)

// Каталог эндпоинтов аутентификации. Каждая функция - тонкая обертка
// над пайплайном с фиксированным методом и путем, без дополнительной логики.

// Register выполняет POST /auth/register
func (c *Client) Register(ctx context.Context, data RegisterData) (*AuthData, error) {
	var out AuthData
	if err := c.post(ctx, "/auth/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login выполняет POST /auth/login
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthData, error) {
	var out AuthData
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile выполняет GET /auth/profile
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile выполняет PUT /auth/profile
func (c *Client) UpdateProfile(ctx context.Context, data ProfileUpdate) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.put(ctx, "/auth/profile", data, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout выполняет POST /auth/logout
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.execute(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}
