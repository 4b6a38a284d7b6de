package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// User is the authenticated admin account.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token and stores it in the auth
// context.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return err
	}
	if res.Token == "" {
		return errors.New("api: login response carried no token")
	}
	if c.auth == nil {
		return errors.New("api: no auth context configured to hold the token")
	}
	if err := c.auth.Set(res.Token); err != nil {
		return fmt.Errorf("api: store token: %w", err)
	}
	return nil
}

// Logout invalidates the server session, then clears the local token. The
// local clear happens even when the server call fails so a dead session
// cannot pin a stale token.
func (c *Client) Logout(ctx context.Context) error {
	callErr := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	if c.auth != nil {
		if err := c.auth.Clear(); err != nil {
			return fmt.Errorf("api: clear token: %w", err)
		}
	}
	if callErr != nil && !errors.Is(callErr, ErrUnauthorized) {
		return callErr
	}
	return nil
}

// CurrentUser fetches the account owning the session token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
