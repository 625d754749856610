package api

import (
	"context"
	"net/http"

	"careportal/internal/models"
)

// UpdateProfileRequest carries the editable profile fields; zero values are
// omitted so a partial update touches only what the patient changed.
type UpdateProfileRequest struct {
	Name           string `json:"name,omitempty"`
	Age            int    `json:"age,omitempty"`
	Gender         string `json:"gender,omitempty"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
