package vocapi

import (
	"context"
	"net/http"
)

// Settings calls report the transport error text when the server sent no message.
const settingsFallback = "An error occurred"

func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	err := c.do(ctx, call{
		method:           http.MethodGet,
		path:             "/user/settings",
		out:              &settings,
		fallback:         settingsFallback,
		transportMessage: true,
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateNotificationSettings(ctx context.Context, s NotificationSettings) error {
	return c.putSettings(ctx, "/user/settings/notifications", s)
}

func (c *Client) UpdatePrivacySettings(ctx context.Context, s PrivacySettings) error {
	return c.putSettings(ctx, "/user/settings/privacy", s)
}

func (c *Client) UpdateSoundSettings(ctx context.Context, s SoundSettings) error {
	return c.putSettings(ctx, "/user/settings/sound", s)
}

func (c *Client) putSettings(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, call{
		method:           http.MethodPut,
		path:             path,
		body:             body,
		fallback:         settingsFallback,
		transportMessage: true,
	})
}
