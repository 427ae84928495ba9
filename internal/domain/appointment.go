package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ActiveStatuses — статусы, при которых слот считается занятым.
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
}

type Appointment struct {
	ID              int64             `json:"id"`
	PatientID       int64             `json:"patient_id"`
	DoctorID        int64             `json:"doctor_id"`
	AppointmentDate time.Time         `json:"appointment_date"`
	AppointmentTime string            `json:"appointment_time"`
	Status          AppointmentStatus `json:"status"`
	Reason          string            `json:"reason,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Price           *float64          `json:"price,omitempty"`
	ReminderSent    bool              `json:"reminder_sent"`
	CreatedBy       *int64            `json:"created_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	PatientName     string            `json:"patient_name,omitempty"`
	PatientEmail    string            `json:"patient_email,omitempty"`
	DoctorName      string            `json:"doctor_name,omitempty"`
}

// IsUpcoming сообщает, не прошел ли еще прием.
func (a Appointment) IsUpcoming(now time.Time) bool {
	t, err := time.Parse("15:04", a.AppointmentTime)
	if err != nil {
		return false
	}
	moment := time.Date(
		a.AppointmentDate.Year(), a.AppointmentDate.Month(), a.AppointmentDate.Day(),
		t.Hour(), t.Minute(), 0, 0, now.Location(),
	)
	return moment.After(now)
}

// CanTransitionTo проверяет допустимость смены статуса: запись
// подтверждается только из pending, отменяется из pending или
// confirmed; cancelled — терминальный статус.
func (a Appointment) CanTransitionTo(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusConfirmed:
		return a.Status == AppointmentStatusPending
	case AppointmentStatusCancelled:
		return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
	default:
		return false
	}
}

type CreateAppointmentDTO struct {
	PatientID       int64    `json:"patient_id" binding:"required"`
	DoctorID        int64    `json:"doctor_id" binding:"required"`
	AppointmentDate string   `json:"appointment_date" binding:"required"`
	AppointmentTime string   `json:"appointment_time" binding:"required"`
	Reason          string   `json:"reason"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
}

type UpdateAppointmentDTO struct {
	AppointmentDate *string  `json:"appointment_date"`
	AppointmentTime *string  `json:"appointment_time"`
	Reason          *string  `json:"reason"`
	Notes           *string  `json:"notes"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
}

type AppointmentFilter struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	Status    *AppointmentStatus `json:"status"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
