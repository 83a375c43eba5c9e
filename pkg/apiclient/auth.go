package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// Login 登录并把访问令牌写入会话。
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &res); err != nil {
		return nil, err
	}
	if err := c.session.Save(res.AccessToken); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &res, nil
}

// Logout 让服务端吊销令牌，无论成功与否本地会话都会被清空。
func (c *Client) Logout(ctx context.Context) error {
	callErr := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err := c.session.Clear(); err != nil {
		return err
	}
	return callErr
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/users", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	if err := c.do(ctx, http.MethodGet, "/users/statistics", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
