package api

import (
	"context"
	"net/http"
	"net/url"

	"careportal/internal/models"
)

// ConversationID builds the deterministic two-party chat key: the
// lexicographically smaller participant id first, joined with an
// underscore. Both sides compute the same id regardless of who asks.
func ConversationID(a, b string) string {
	if a < b {
		return a + "_" + b
	}
	return b + "_" + a
}

type sendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

// Messages fetches the conversation history for the given conversation id.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	path := "/interactions/messages/" + url.PathEscape(conversationID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends a chat message to the given receiver. The backend wraps
// the created message in a data envelope.
func (c *Client) SendMessage(ctx context.Context, receiverID, content string) (*models.Message, error) {
	var resp struct {
		Data models.Message `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/interactions/messages", sendMessageRequest{Receiver: receiverID, Content: content}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
