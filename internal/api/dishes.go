package api

import (
	"context"
	"fmt"
)

// Dishes выполняет GET /restaurants/{id}/dishes
func (c *Client) Dishes(ctx context.Context, restaurantID string) ([]Dish, error) {
	var out struct {
		Dishes []Dish `json:"dishes"`
	}
	if err := c.get(ctx, fmt.Sprintf("/restaurants/%s/dishes", restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return out.Dishes, nil
}

// CreateDish выполняет POST /restaurants/{id}/dishes
func (c *Client) CreateDish(ctx context.Context, restaurantID string, input DishInput) (*Dish, error) {
	var out struct {
		Dish Dish `json:"dish"`
	}
	if err := c.post(ctx, fmt.Sprintf("/restaurants/%s/dishes", restaurantID), input, &out); err != nil {
		return nil, err
	}
	return &out.Dish, nil
}

// UpdateDish выполняет PUT /restaurants/{id}/dishes/{dishId}
func (c *Client) UpdateDish(ctx context.Context, restaurantID, dishID string, input DishInput) (*Dish, error) {
	var out struct {
		Dish Dish `json:"dish"`
	}
	if err := c.put(ctx, fmt.Sprintf("/restaurants/%s/dishes/%s", restaurantID, dishID), input, &out); err != nil {
		return nil, err
	}
	return &out.Dish, nil
}

// DeleteDish выполняет DELETE /restaurants/{id}/dishes/{dishId}
func (c *Client) DeleteDish(ctx context.Context, restaurantID, dishID string) error {
	return c.delete(ctx, fmt.Sprintf("/restaurants/%s/dishes/%s", restaurantID, dishID))
}
