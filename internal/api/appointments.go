package api

import (
	"context"
	"net/http"
	"net/url"

	"careportal/internal/models"
)

// BookAppointmentRequest asks for a visit slot with a doctor.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason,omitempty"`
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) RescheduleAppointment(ctx context.Context, id, date, timeSlot string) (*models.Appointment, error) {
	var appointment models.Appointment
	path := "/appointments/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, rescheduleRequest{Date: date, Time: timeSlot}, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}
