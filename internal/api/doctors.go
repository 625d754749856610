package api

import (
	"context"
	"net/http"
	"net/url"

	"careportal/internal/models"
)

type doctorsResponse struct {
	Doctors []models.Doctor `json:"doctors"`
}

// AvailableDoctors lists the doctors currently accepting patients.
func (c *Client) AvailableDoctors(ctx context.Context) ([]models.Doctor, error) {
	var resp doctorsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/doctors/available", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

func (c *Client) Doctor(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := c.doJSON(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id), nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}
