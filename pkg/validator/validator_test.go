package validator

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"ivan.petrov+tag@clinic.ru", true},
		{"bad@", false},
		{"@example.com", false},
		{"no-at-sign", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+79991234567", true},
		{"8 (999) 123-45-67", true},
		{"12345", false},
		{"abc", false},
	}

	for _, tt := range tests {
		if got := ValidatePhone(tt.phone); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"09:00", true},
		{"23:59", true},
		{"00:00", true},
		{"24:00", false},
		{"12:60", false},
		{"9:00", false},
		{"09-00", false},
		{"ab:cd", false},
	}

	for _, tt := range tests {
		if got := ValidateTimeOfDay(tt.value); got != tt.want {
			t.Errorf("ValidateTimeOfDay(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Городская больница №1", "gorodskaya-bolnitsa-1"},
		{"Петров Иван", "petrov-ivan"},
		{"Central Clinic", "central-clinic"},
		{"  лишние   пробелы  ", "lishnie-probely"},
		{"Щёлково", "schelkovo"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8 (999) 123-45-67", "+79991234567"},
		{"+7 999 123 45 67", "+79991234567"},
		{"79991234567", "+79991234567"},
		{"9991234567", "+79991234567"},
	}

	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
