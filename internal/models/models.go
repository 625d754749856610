// Package models defines the payload types exchanged with the healthcare
// platform API. The wire shapes mirror what the backend serves; fields the
// client never touches are left out.
package models

import "time"

// Doctor is a practitioner available for appointments and messaging.
type Doctor struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Rating         float64 `json:"rating,omitempty"`
	Availability   string  `json:"availability,omitempty"`
	ProfileImage   string  `json:"profileImage,omitempty"`
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment is a booked or requested visit with a doctor.
type Appointment struct {
	ID         string            `json:"_id"`
	DoctorID   string            `json:"doctorId"`
	DoctorName string            `json:"doctorName"`
	Specialty  string            `json:"specialty"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Time       string            `json:"time"` // e.g. "10:00 AM"
	Status     AppointmentStatus `json:"status"`
}

// Message is a single chat message between two participants.
type Message struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MedicalRecord describes an uploaded document (lab report, imaging, ...).
type MedicalRecord struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	FileName string `json:"fileName,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
}

// Notification is a platform notification shown to the patient.
type Notification struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"` // appointment | prescription | message
	Time    string `json:"time"`
}

// Profile is the authenticated patient's account data.
type Profile struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Age            int    `json:"age,omitempty"`
	Gender         string `json:"gender,omitempty"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
	Plan           string `json:"plan,omitempty"`
}

// Subscription describes the account's billing state.
type Subscription struct {
	Plan     string `json:"plan"`
	Status   string `json:"status"`
	RenewsAt string `json:"renewsAt,omitempty"`
}

// DiagnosisRequest is the symptom-checker input.
type DiagnosisRequest struct {
	Symptoms       []string `json:"symptoms"`
	Age            string   `json:"age"`
	Gender         string   `json:"gender"`
	MedicalHistory string   `json:"medicalHistory"`
}

// DiagnosisReport is the symptom-checker output. It is advisory material,
// not a diagnosis.
type DiagnosisReport struct {
	Conditions  []string `json:"conditions"`
	Treatments  []string `json:"treatments"`
	Medications []string `json:"medications"`
}
