package api

import (
	"context"
	"net/http"
	"net/url"

	"careportal/internal/models"
)

func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), nil, nil)
}
