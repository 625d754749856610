package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"careportal/internal/common"
	"careportal/internal/models"
)

// Symptoms runs the symptom checker. The platform endpoint is tried first;
// when it is unavailable and a local analyzer is configured, the analysis
// falls back to it.
func (a *App) Symptoms(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Symptoms, comma separated (e.g. headache, fever)", os.Stdout)
	if err != nil {
		return err
	}

	var symptoms []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symptoms = append(symptoms, s)
		}
	}
	if len(symptoms) == 0 {
		printlnFn("No symptoms given.")
		return nil
	}

	age, err := getSimpleText(a.reader, "Age", os.Stdout)
	if err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Gender", os.Stdout)
	if err != nil {
		return err
	}
	history, err := getSimpleText(a.reader, "Relevant medical history (optional)", os.Stdout)
	if err != nil {
		return err
	}

	req := models.DiagnosisRequest{
		Symptoms:       symptoms,
		Age:            age,
		Gender:         gender,
		MedicalHistory: history,
	}

	report, err := a.care.AnalyzeSymptoms(ctx, req)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) && a.analyzer != nil {
			a.log.Warn(ctx, "symptom endpoint unavailable, using local analyzer")
			report, err = a.analyzer.Analyze(ctx, req)
		}
		if err != nil {
			return a.report(err)
		}
	}

	printReport(report)
	return nil
}

func printReport(r *models.DiagnosisReport) {
	printSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		printlnFn(title + ":")
		for _, item := range items {
			printlnFn("  -", item)
		}
	}

	printSection("Possible conditions", r.Conditions)
	printSection("Suggested treatments", r.Treatments)
	printSection("Common medications", r.Medications)
	printlnFn("This is informational only and not a medical diagnosis.")
}
