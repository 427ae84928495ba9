package domain

import (
	"testing"
	"time"
)

func TestHospitalIsOpenAt(t *testing.T) {
	hospital := Hospital{StartHour: 8, EndHour: 20}

	tests := []struct {
		hour int
		want bool
	}{
		{7, false},
		{8, true},
		{13, true},
		{19, true},
		{20, false},
		{23, false},
	}

	for _, tt := range tests {
		moment := time.Date(2026, 1, 5, tt.hour, 30, 0, 0, time.UTC)
		if got := hospital.IsOpenAt(moment); got != tt.want {
			t.Errorf("IsOpenAt(%d:30) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestHospitalWorkingHoursDisplay(t *testing.T) {
	hospital := Hospital{StartHour: 8, EndHour: 20}
	if got := hospital.WorkingHoursDisplay(); got != "08:00-20:00" {
		t.Errorf("WorkingHoursDisplay() = %q, want %q", got, "08:00-20:00")
	}
}

func TestPatientFullName(t *testing.T) {
	p := Patient{FirstName: "Иван", LastName: "Петров", MiddleName: "Сергеевич"}
	if got := p.FullName(); got != "Петров Иван Сергеевич" {
		t.Errorf("FullName() = %q", got)
	}

	p.MiddleName = ""
	if got := p.FullName(); got != "Петров Иван" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestPatientAgeAt(t *testing.T) {
	p := Patient{BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		date string
		want int
	}{
		{"2026-06-14", 35},
		{"2026-06-15", 36},
		{"2026-01-01", 35},
		{"2026-12-31", 36},
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.AgeAt(date); got != tt.want {
			t.Errorf("AgeAt(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestDoctorFullTitle(t *testing.T) {
	d := Doctor{Name: "Анна Смирнова", Specialization: "кардиолог"}
	if got := d.FullTitle(); got != "Анна Смирнова, кардиолог" {
		t.Errorf("FullTitle() = %q", got)
	}
}
