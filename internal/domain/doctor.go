package domain

import (
	"time"
)

type Doctor struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	Rating          float64   `json:"rating"`
	IsActive        bool      `json:"is_active"`
	HospitalID      int64     `json:"hospital_id"`
	HospitalName    string    `json:"hospital_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullTitle возвращает имя врача вместе со специализацией.
func (d Doctor) FullTitle() string {
	return d.Name + ", " + d.Specialization
}

type CreateDoctorDTO struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Specialization  string  `json:"specialization" binding:"required,max=200"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           string  `json:"phone"`
	Bio             string  `json:"bio"`
	ExperienceYears int     `json:"experience_years" binding:"min=0"`
	Rating          float64 `json:"rating" binding:"min=0,max=5"`
	HospitalID      int64   `json:"hospital_id" binding:"required"`
}

type UpdateDoctorDTO struct {
	Name            *string  `json:"name" binding:"omitempty,max=100"`
	Specialization  *string  `json:"specialization" binding:"omitempty,max=200"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Phone           *string  `json:"phone"`
	Bio             *string  `json:"bio"`
	ExperienceYears *int     `json:"experience_years" binding:"omitempty,min=0"`
	Rating          *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	HospitalID      *int64   `json:"hospital_id"`
	IsActive        *bool    `json:"is_active"`
}

type DoctorFilter struct {
	Query          *string `json:"query"`
	Specialization *string `json:"specialization"`
	HospitalID     *int64  `json:"hospital_id"`
	IsActive       *bool   `json:"is_active"`
	Limit          int     `json:"limit"`
	Offset         int     `json:"offset"`
}
