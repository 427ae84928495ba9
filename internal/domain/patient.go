package domain

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Patient struct {
	ID               int64     `json:"id"`
	IsActive         bool      `json:"is_active"`
	Slug             string    `json:"slug"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	MiddleName       string    `json:"middle_name,omitempty"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	BirthDate        time.Time `json:"birth_date"`
	Gender           Gender    `json:"gender,omitempty"`
	BloodType        string    `json:"blood_type,omitempty"`
	Allergies        string    `json:"allergies,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	InsuranceNumber  string    `json:"insurance_number,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FullName возвращает полное ФИО пациента.
func (p Patient) FullName() string {
	parts := []string{p.LastName, p.FirstName}
	if p.MiddleName != "" {
		parts = append(parts, p.MiddleName)
	}
	return strings.Join(parts, " ")
}

// AgeAt возвращает полных лет на указанную дату.
func (p Patient) AgeAt(date time.Time) int {
	age := date.Year() - p.BirthDate.Year()
	if date.Month() < p.BirthDate.Month() ||
		(date.Month() == p.BirthDate.Month() && date.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

type CreatePatientDTO struct {
	FirstName        string `json:"first_name" binding:"required,max=50"`
	LastName         string `json:"last_name" binding:"required,max=50"`
	MiddleName       string `json:"middle_name" binding:"max=50"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required"`
	Address          string `json:"address" binding:"required,max=200"`
	BirthDate        string `json:"birth_date" binding:"required"`
	Gender           Gender `json:"gender" binding:"omitempty,oneof=male female"`
	BloodType        string `json:"blood_type" binding:"max=5"`
	Allergies        string `json:"allergies"`
	EmergencyContact string `json:"emergency_contact" binding:"max=50"`
	InsuranceNumber  string `json:"insurance_number" binding:"max=50"`
}

type UpdatePatientDTO struct {
	FirstName        *string `json:"first_name" binding:"omitempty,max=50"`
	LastName         *string `json:"last_name" binding:"omitempty,max=50"`
	MiddleName       *string `json:"middle_name" binding:"omitempty,max=50"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address" binding:"omitempty,max=200"`
	BirthDate        *string `json:"birth_date"`
	Gender           *Gender `json:"gender" binding:"omitempty,oneof=male female"`
	BloodType        *string `json:"blood_type" binding:"omitempty,max=5"`
	Allergies        *string `json:"allergies"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=50"`
	InsuranceNumber  *string `json:"insurance_number" binding:"omitempty,max=50"`
	IsActive         *bool   `json:"is_active"`
}

type PatientFilter struct {
	Query    *string `json:"query"`
	IsActive *bool   `json:"is_active"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}
