package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"careportal/internal/common"
	"careportal/internal/filex"
	"careportal/internal/models"
	"careportal/internal/netx"
)

// Records lists the patient's uploaded medical records.
func (a *App) Records(ctx context.Context) error {
	records, err := a.care.MedicalRecords(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(records) == 0 {
		printlnFn("No medical records.")
		return nil
	}
	for _, r := range records {
		printlnFn(fmt.Sprintf("%s  %s  %s (%s)", r.ID, r.Date, r.Title, r.Type))
	}
	return nil
}

// Upload reads a local file and uploads it as a medical record.
func (a *App) Upload(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Record title", os.Stdout)
	if err != nil {
		return err
	}
	recordType, err := getSimpleText(a.reader, "Record type (Lab Report, Prescription, Imaging, ...)", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Path to file", os.Stdout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	rec, err := a.care.UploadMedicalRecord(ctx, title, recordType, filepath.Base(path), content)
	if err != nil {
		return a.report(err)
	}

	printlnFn("Uploaded", rec.ID)
	return nil
}

// Export downloads a record's file into the exports directory under the
// client state dir and prints the resulting path.
func (a *App) Export(ctx context.Context, id string) error {
	records, err := a.care.MedicalRecords(ctx)
	if err != nil {
		return a.report(err)
	}

	var rec *models.MedicalRecord
	for i := range records {
		if records[i].ID == id {
			rec = &records[i]
			break
		}
	}
	if rec == nil || rec.FileURL == "" {
		printlnFn("No downloadable file for record", id)
		return common.ErrorNotFound
	}

	content, err := netx.FetchURL(ctx, &http.Client{Timeout: a.config.RequestTimeout}, rec.FileURL)
	if err != nil {
		printlnFn("Download failed:", err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir(a.config.StateDir, "exports")
	if err != nil {
		return a.report(err)
	}

	name := rec.FileName
	if name == "" {
		name = rec.ID
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return a.report(err)
	}

	printlnFn("Saved to", path)
	return nil
}

// DeleteRecord removes a medical record.
func (a *App) DeleteRecord(ctx context.Context, id string) error {
	if err := a.care.DeleteMedicalRecord(ctx, id); err != nil {
		return a.report(err)
	}
	printlnFn("Deleted", id)
	return nil
}
