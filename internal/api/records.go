package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"careportal/internal/models"

	"github.com/sethvargo/go-retry"
)

func (c *Client) MedicalRecords(ctx context.Context) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	if err := c.doJSON(ctx, http.MethodGet, "/records", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UploadMedicalRecord uploads a document as a multipart form. The content
// is buffered up front so a transient failure can be retried with an
// identical body.
func (c *Client) UploadMedicalRecord(ctx context.Context, title, recordType, fileName string, content []byte) (*models.MedicalRecord, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := w.WriteField("type", recordType); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	var record models.MedicalRecord
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(250*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/records/upload", bytes.NewReader(body.Bytes()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return c.send(ctx, req, &record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) DeleteMedicalRecord(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil)
}
