package cli

import (
	"context"
	"fmt"
	"os"

	"careportal/internal/api"
)

// Doctors lists practitioners currently accepting appointments.
func (a *App) Doctors(ctx context.Context) error {
	doctors, err := a.care.AvailableDoctors(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(doctors) == 0 {
		printlnFn("No doctors available right now.")
		return nil
	}
	for _, d := range doctors {
		printlnFn(fmt.Sprintf("%s  %s (%s) rating %.1f", d.ID, d.Name, d.Specialization, d.Rating))
	}
	return nil
}

// DoctorInfo prints the details of one practitioner.
func (a *App) DoctorInfo(ctx context.Context, id string) error {
	d, err := a.care.Doctor(ctx, id)
	if err != nil {
		return a.report(err)
	}
	printlnFn(fmt.Sprintf("%s, %s", d.Name, d.Specialization))
	if d.Rating > 0 {
		printlnFn(fmt.Sprintf("Rating: %.1f", d.Rating))
	}
	if d.Availability != "" {
		printlnFn("Availability:", d.Availability)
	}
	return nil
}

// Appointments lists the patient's appointments.
func (a *App) Appointments(ctx context.Context) error {
	appts, err := a.care.Appointments(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(appts) == 0 {
		printlnFn("No appointments.")
		return nil
	}
	for _, ap := range appts {
		printlnFn(fmt.Sprintf("%s  %s %s  %s (%s)  [%s]", ap.ID, ap.Date, ap.Time, ap.DoctorName, ap.Specialty, ap.Status))
	}
	return nil
}

// Book prompts for the appointment details and requests a booking. The
// appointment starts out Pending until the doctor confirms it.
func (a *App) Book(ctx context.Context) error {
	doctorID, err := getSimpleText(a.reader, "Doctor id (see 'doctors')", os.Stdout)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	timeSlot, err := getSimpleText(a.reader, "Time (e.g. 10:00 AM)", os.Stdout)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Reason for visit", os.Stdout)
	if err != nil {
		return err
	}

	ap, err := a.care.BookAppointment(ctx, api.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     date,
		Time:     timeSlot,
		Reason:   reason,
	})
	if err != nil {
		return a.report(err)
	}

	printlnFn(fmt.Sprintf("Booked %s on %s %s (%s)", ap.ID, ap.Date, ap.Time, ap.Status))
	return nil
}

// Reschedule moves an existing appointment to a new slot.
func (a *App) Reschedule(ctx context.Context, id string) error {
	date, err := getSimpleText(a.reader, "New date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	timeSlot, err := getSimpleText(a.reader, "New time (e.g. 10:00 AM)", os.Stdout)
	if err != nil {
		return err
	}

	ap, err := a.care.RescheduleAppointment(ctx, id, date, timeSlot)
	if err != nil {
		return a.report(err)
	}

	printlnFn(fmt.Sprintf("Rescheduled %s to %s %s", ap.ID, ap.Date, ap.Time))
	return nil
}

// Cancel cancels an appointment.
func (a *App) Cancel(ctx context.Context, id string) error {
	if err := a.care.CancelAppointment(ctx, id); err != nil {
		return a.report(err)
	}
	printlnFn("Cancelled", id)
	return nil
}
