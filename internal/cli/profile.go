package cli

import (
	"context"
	"os"
	"strconv"

	"careportal/internal/api"
)

// ShowProfile prints the authenticated patient's profile.
func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.auth.Me(ctx)
	if err != nil {
		return a.report(err)
	}

	printlnFn("Name:   ", p.Name)
	printlnFn("Email:  ", p.Email)
	if p.Age > 0 {
		printlnFn("Age:    ", p.Age)
	}
	if p.Gender != "" {
		printlnFn("Gender: ", p.Gender)
	}
	if p.MedicalHistory != "" {
		printlnFn("History:", p.MedicalHistory)
	}
	return nil
}

// EditProfile prompts for new profile values and submits them. Fields left
// empty keep their current value on the server.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	ageText, err := getSimpleText(a.reader, "Age (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Gender (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	history, err := GetMultiline(a.reader, "Medical history (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	req := api.UpdateProfileRequest{
		Name:           name,
		Gender:         gender,
		MedicalHistory: history,
	}
	if ageText != "" {
		age, err := strconv.Atoi(ageText)
		if err != nil {
			printlnFn("Age must be a number.")
			return err
		}
		req.Age = age
	}

	if _, err := a.care.UpdateProfile(ctx, req); err != nil {
		return a.report(err)
	}

	printlnFn("Profile updated.")
	return nil
}
