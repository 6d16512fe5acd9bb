package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Restaurants выполняет GET /restaurants с параметрами фильтрации и пагинации
func (c *Client) Restaurants(ctx context.Context, params RestaurantListParams) (*RestaurantList, error) {
	var out RestaurantList
	if err := c.get(ctx, "/restaurants", params.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restaurant выполняет GET /restaurants/{id}
func (c *Client) Restaurant(ctx context.Context, id string) (*Restaurant, error) {
	var out struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.get(ctx, "/restaurants/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

// Ranking выполняет GET /restaurants/ranking
func (c *Client) Ranking(ctx context.Context, limit int) ([]Restaurant, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Restaurants []Restaurant `json:"restaurants"`
	}
	if err := c.get(ctx, "/restaurants/ranking", query, &out); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}

// Stats выполняет GET /restaurants/stats
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out struct {
		Stats Stats `json:"stats"`
	}
	if err := c.get(ctx, "/restaurants/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// Cities выполняет GET /restaurants/cities
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var out struct {
		Cities []string `json:"cities"`
	}
	if err := c.get(ctx, "/restaurants/cities", nil, &out); err != nil {
		return nil, err
	}
	return out.Cities, nil
}

// MyRestaurants выполняет GET /restaurants/my-restaurants
func (c *Client) MyRestaurants(ctx context.Context) ([]Restaurant, error) {
	var out struct {
		Restaurants []Restaurant `json:"restaurants"`
	}
	if err := c.get(ctx, "/restaurants/my-restaurants", nil, &out); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}

// CreateRestaurant выполняет POST /restaurants
func (c *Client) CreateRestaurant(ctx context.Context, input RestaurantInput) (*Restaurant, error) {
	var out struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.post(ctx, "/restaurants", input, &out); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

// UpdateRestaurant выполняет PUT /restaurants/{id}
func (c *Client) UpdateRestaurant(ctx context.Context, id string, input RestaurantInput) (*Restaurant, error) {
	var out struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.put(ctx, "/restaurants/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

// ApproveRestaurant выполняет PATCH /restaurants/{id}/approve
func (c *Client) ApproveRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	var out struct {
		Restaurant Restaurant `json:"restaurant"`
	}
	if err := c.patch(ctx, fmt.Sprintf("/restaurants/%s/approve", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

// DeleteRestaurant выполняет DELETE /restaurants/{id}
func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodDelete, "/restaurants/"+id, nil, nil)
	return err
}
