package api

import (
	"context"
	"fmt"

	"taskcli/internal/service"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup implements service.Service.
func (c *Client) Signup(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	var res service.AuthResult
	if err := c.do(ctx, "POST", "auth/signup", nil, signupRequest{Name: name, Email: email, Password: password}, &res); err != nil {
		return service.AuthResult{}, err
	}
	if err := c.persist(ctx, res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	var res service.AuthResult
	if err := c.do(ctx, "POST", "auth/login", nil, loginRequest{Email: email, Password: password}, &res); err != nil {
		return service.AuthResult{}, err
	}
	if err := c.persist(ctx, res); err != nil {
		return service.AuthResult{}, err
	}
	return res, nil
}

func (c *Client) persist(ctx context.Context, res service.AuthResult) error {
	if res.Token == "" {
		return fmt.Errorf("backend response carried no token")
	}
	if err := c.session.Save(ctx, res.Token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

// Logout implements service.Service. It only removes the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.session.Clear(ctx); err != nil {
		c.log.Warn("removing session token failed", "err", err)
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// IsAuthenticated implements service.Service.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.session.Present(ctx)
}

// Profile implements service.Service.
func (c *Client) Profile(ctx context.Context) (service.User, error) {
	var user service.User
	if err := c.do(ctx, "GET", "auth/profile", nil, nil, &user); err != nil {
		return service.User{}, err
	}
	return user, nil
}
