package domain

import (
	"fmt"
	"time"
)

type Hospital struct {
	ID          int64     `json:"id"`
	IsActive    bool      `json:"is_active"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	StartHour   int       `json:"start_hour"`
	EndHour     int       `json:"end_hour"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkingHoursDisplay возвращает рабочие часы в виде "08:00-20:00".
func (h Hospital) WorkingHoursDisplay() string {
	return fmt.Sprintf("%02d:00-%02d:00", h.StartHour, h.EndHour)
}

// IsOpenAt проверяет, открыта ли больница в указанный момент времени.
func (h Hospital) IsOpenAt(t time.Time) bool {
	hour := t.Hour()
	return h.StartHour <= hour && hour < h.EndHour
}

type CreateHospitalDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	StartHour   int    `json:"start_hour" binding:"min=0,max=24"`
	EndHour     int    `json:"end_hour" binding:"min=0,max=24"`
	Description string `json:"description"`
}

type UpdateHospitalDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	StartHour   *int    `json:"start_hour" binding:"omitempty,min=0,max=24"`
	EndHour     *int    `json:"end_hour" binding:"omitempty,min=0,max=24"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type HospitalFilter struct {
	Query    *string `json:"query"`
	IsActive *bool   `json:"is_active"`
	OpenNow  bool    `json:"open_now"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}
