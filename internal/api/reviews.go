package api

import (
	"context"
	"fmt"
	"net/http"
)

// Reviews выполняет GET /restaurants/{id}/reviews
func (c *Client) Reviews(ctx context.Context, restaurantID string) ([]Review, error) {
	var out struct {
		Reviews []Review `json:"reviews"`
	}
	if err := c.get(ctx, fmt.Sprintf("/restaurants/%s/reviews", restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// Review выполняет GET /reviews/{id}
func (c *Client) Review(ctx context.Context, id string) (*Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	if err := c.get(ctx, "/reviews/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

// CreateReview выполняет POST /restaurants/{id}/reviews
func (c *Client) CreateReview(ctx context.Context, restaurantID string, input ReviewInput) (*Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	if err := c.post(ctx, fmt.Sprintf("/restaurants/%s/reviews", restaurantID), input, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

// UpdateReview выполняет PUT /reviews/{id}
func (c *Client) UpdateReview(ctx context.Context, id string, input ReviewInput) (*Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	if err := c.put(ctx, "/reviews/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

// DeleteReview выполняет DELETE /reviews/{id}
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.delete(ctx, "/reviews/"+id)
}

// ToggleLike выполняет POST /reviews/{id}/like
func (c *Client) ToggleLike(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodPost, fmt.Sprintf("/reviews/%s/like", id), nil, nil)
	return err
}

// ToggleDislike выполняет POST /reviews/{id}/dislike
func (c *Client) ToggleDislike(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodPost, fmt.Sprintf("/reviews/%s/dislike", id), nil, nil)
	return err
}
