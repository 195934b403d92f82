package api

import (
	"context"

	"cedra_storefront/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login : POST /api/users/login -> {token, ...user}
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := c.Post(ctx, "/api/users/login", LoginRequest{Email: email, Password: password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register : POST /api/users -> {token, ...user}
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	req := RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.Post(ctx, "/api/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, "/api/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileWithToken lit le profil avec un jeton qui n'est pas encore en session (retour OAuth)
func (c *Client) ProfileWithToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.doWithToken(ctx, token, "GET", "/api/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.Put(ctx, "/api/users/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
