package api

import (
	"context"
	"net/http"

	"careportal/internal/models"
)

// AnalyzeSymptoms runs the platform's symptom checker. The report is
// advisory material, never a diagnosis.
func (c *Client) AnalyzeSymptoms(ctx context.Context, req models.DiagnosisRequest) (*models.DiagnosisReport, error) {
	var report models.DiagnosisReport
	if err := c.doJSON(ctx, http.MethodPost, "/diagnosis/analyze", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
