package domain

import (
	"time"
)

type TreatmentType string

const (
	TreatmentTypeOutpatient TreatmentType = "outpatient"
	TreatmentTypeInpatient  TreatmentType = "inpatient"
)

type MedicalRecord struct {
	ID            int64         `json:"id"`
	PatientID     int64         `json:"patient_id"`
	DoctorID      *int64        `json:"doctor_id,omitempty"`
	AppointmentID *int64        `json:"appointment_id,omitempty"`
	RecordDate    time.Time     `json:"record_date"`
	Symptoms      string        `json:"symptoms"`
	Diagnosis     string        `json:"diagnosis"`
	Treatment     string        `json:"treatment"`
	Cost          float64       `json:"cost"`
	TreatmentType TreatmentType `json:"treatment_type"`
}

type CreateMedicalRecordDTO struct {
	PatientID     int64         `json:"patient_id" binding:"required"`
	DoctorID      *int64        `json:"doctor_id"`
	AppointmentID *int64        `json:"appointment_id"`
	Symptoms      string        `json:"symptoms" binding:"required"`
	Diagnosis     string        `json:"diagnosis" binding:"required"`
	Treatment     string        `json:"treatment" binding:"required"`
	Cost          float64       `json:"cost" binding:"min=0"`
	TreatmentType TreatmentType `json:"treatment_type" binding:"omitempty,oneof=outpatient inpatient"`
}

type UpdateMedicalRecordDTO struct {
	Symptoms      *string        `json:"symptoms"`
	Diagnosis     *string        `json:"diagnosis"`
	Treatment     *string        `json:"treatment"`
	Cost          *float64       `json:"cost" binding:"omitempty,min=0"`
	TreatmentType *TreatmentType `json:"treatment_type" binding:"omitempty,oneof=outpatient inpatient"`
}

type MedicalRecordFilter struct {
	PatientID *int64 `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}
