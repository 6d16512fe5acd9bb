package api

import "context"

// Categories выполняет GET /categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateCategory выполняет POST /categories
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var out struct {
		Category Category `json:"category"`
	}
	if err := c.post(ctx, "/categories", input, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}
