package vocapi

import (
	"context"
	"net/http"
)

const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathForgetPassword = "/auth/forget-password"
)

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     PathLogin,
		body:     creds,
		out:      &resp,
		fallback: "An error occurred during login",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, user UserData) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     PathRegister,
		body:     user,
		out:      &resp,
		fallback: "An error occurred during signup",
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ForgetPassword(ctx context.Context, email string) (*Acknowledgement, error) {
	var ack Acknowledgement
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     PathForgetPassword,
		body:     map[string]string{"email": email},
		out:      &ack,
		fallback: "An error occurred during forget password",
	})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}
