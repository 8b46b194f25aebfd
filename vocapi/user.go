package vocapi

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) GetUserProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/user/profile",
		out:      &profile,
		fallback: "Failed to fetch user profile",
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetNotifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/user/notifications",
		out:      &notifications,
		fallback: "Failed to fetch notifications",
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationAsRead(ctx context.Context, id ID) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/user/notifications/" + url.PathEscape(id.String()) + "/read",
		body:     struct{}{},
		fallback: "Failed to mark notification as read",
	})
}
