package api

import (
	"context"
	"net/http"

	"careportal/internal/models"
)

type subscribeRequest struct {
	Plan string `json:"plan"`
}

type subscribeResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type confirmRequest struct {
	SessionID string `json:"sessionId"`
}

func (c *Client) SubscriptionStatus(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.doJSON(ctx, http.MethodGet, "/subscription/status", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subscribe creates a checkout session for the plan and returns the
// external checkout URL. The payment pages themselves belong to the
// provider; the client only hands the URL to the user.
func (c *Client) Subscribe(ctx context.Context, plan string) (string, error) {
	var resp subscribeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/subscription/subscribe", subscribeRequest{Plan: plan}, &resp); err != nil {
		return "", err
	}
	return resp.CheckoutURL, nil
}

// ConfirmCheckout exchanges the session id from the checkout return URL for
// the updated subscription. Like every call, it carries the current session
// bearer — never a cached token from a side channel.
func (c *Client) ConfirmCheckout(ctx context.Context, sessionID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.doJSON(ctx, http.MethodPost, "/subscription/confirm", confirmRequest{SessionID: sessionID}, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
