package api

import "context"

// Users выполняет GET /users
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UserByID выполняет GET /users/{id}
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateUser выполняет PUT /users/{id}
func (c *Client) UpdateUser(ctx context.Context, id string, input UserUpdate) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.put(ctx, "/users/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// DeleteUser выполняет DELETE /users/{id}
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id)
}
