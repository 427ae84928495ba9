package domain

import (
	"time"
)

// День недели расписания: 0 — понедельник, 6 — воскресенье.
type Weekday int

const (
	WeekdayMonday Weekday = iota
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
	WeekdaySunday
)

// WeekdayOf переводит time.Weekday (воскресенье = 0) в нумерацию
// расписаний (понедельник = 0).
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

type ReceptionType string

const (
	ReceptionTypeOffline ReceptionType = "offline"
	ReceptionTypeOnline  ReceptionType = "online"
)

const (
	MinSlotDuration = 10
	MaxSlotDuration = 120
)

type Schedule struct {
	ID            int64         `json:"id"`
	DoctorID      int64         `json:"doctor_id"`
	Cabinet       int           `json:"cabinet"`
	DayOfWeek     Weekday       `json:"day_of_week"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	IsWorking     bool          `json:"is_working"`
	SlotDuration  int           `json:"slot_duration"`
	ReceptionType ReceptionType `json:"reception_type"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate проверяет инварианты расписания: корректные времена,
// начало раньше окончания, длительность приема в допустимых пределах.
func (s Schedule) Validate() error {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	if !start.Before(end) {
		return ErrInvalidSchedule
	}
	if s.SlotDuration < MinSlotDuration || s.SlotDuration > MaxSlotDuration {
		return ErrInvalidSchedule
	}
	if s.DayOfWeek < WeekdayMonday || s.DayOfWeek > WeekdaySunday {
		return ErrInvalidSchedule
	}
	return nil
}

type CreateScheduleDTO struct {
	DoctorID      int64         `json:"doctor_id" binding:"required"`
	Cabinet       int           `json:"cabinet" binding:"required,min=1"`
	DayOfWeek     Weekday       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime     string        `json:"start_time" binding:"required"`
	EndTime       string        `json:"end_time" binding:"required"`
	SlotDuration  int           `json:"slot_duration" binding:"required"`
	ReceptionType ReceptionType `json:"reception_type" binding:"omitempty,oneof=offline online"`
}

type UpdateScheduleDTO struct {
	Cabinet       *int           `json:"cabinet" binding:"omitempty,min=1"`
	StartTime     *string        `json:"start_time"`
	EndTime       *string        `json:"end_time"`
	SlotDuration  *int           `json:"slot_duration"`
	IsWorking     *bool          `json:"is_working"`
	ReceptionType *ReceptionType `json:"reception_type" binding:"omitempty,oneof=offline online"`
}

type ScheduleFilter struct {
	DoctorID  *int64   `json:"doctor_id"`
	DayOfWeek *Weekday `json:"day_of_week"`
	IsWorking *bool    `json:"is_working"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}
