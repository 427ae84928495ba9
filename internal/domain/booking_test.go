package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func workingSchedule(day Weekday, start, end string, duration int) Schedule {
	return Schedule{
		DoctorID:      1,
		Cabinet:       101,
		DayOfWeek:     day,
		StartTime:     start,
		EndTime:       end,
		IsWorking:     true,
		SlotDuration:  duration,
		ReceptionType: ReceptionTypeOffline,
	}
}

func TestComputeSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     []string
	}{
		{
			name:     "три часа по 30 минут",
			start:    "09:00",
			end:      "12:00",
			duration: 30,
			want:     []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "последний слот упирается в конец окна",
			start:    "10:00",
			end:      "11:00",
			duration: 60,
			want:     []string{"10:00"},
		},
		{
			name:     "неполный слот отбрасывается",
			start:    "09:00",
			end:      "10:10",
			duration: 45,
			want:     []string{"09:00"},
		},
		{
			name:     "окно короче слота",
			start:    "09:00",
			end:      "09:20",
			duration: 30,
			want:     []string{},
		},
		{
			name:     "длительность не делит окно нацело",
			start:    "08:00",
			end:      "12:30",
			duration: 40,
			want:     []string{"08:00", "08:40", "09:20", "10:00", "10:40", "11:20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSlots(workingSchedule(WeekdayMonday, tt.start, tt.end, tt.duration))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeSlots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSlotsCount(t *testing.T) {
	// при окне, кратном длительности, слотов ровно (end-start)/duration
	schedule := workingSchedule(WeekdayMonday, "08:00", "16:00", 20)
	slots := ComputeSlots(schedule)
	if len(slots) != 24 {
		t.Errorf("len(slots) = %d, want 24", len(slots))
	}

	end, _ := time.Parse("15:04", schedule.EndTime)
	duration := time.Duration(schedule.SlotDuration) * time.Minute
	for _, slot := range slots {
		st, err := time.Parse("15:04", slot)
		if err != nil {
			t.Fatalf("слот %q не является временем: %v", slot, err)
		}
		if st.Add(duration).After(end) {
			t.Errorf("слот %s выходит за конец окна %s", slot, schedule.EndTime)
		}
	}
}

func TestValidateBooking(t *testing.T) {
	// 2026-01-05 — понедельник
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)
	schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)

	tests := []struct {
		name     string
		date     time.Time
		time     string
		schedule *Schedule
		busy     []string
		wantErr  error
	}{
		{
			name:     "успешная запись",
			date:     monday,
			time:     "10:00",
			schedule: &schedule,
			wantErr:  nil,
		},
		{
			name:     "время на границе окна допустимо",
			date:     monday,
			time:     "17:00",
			schedule: &schedule,
			wantErr:  nil,
		},
		{
			name:     "нет расписания на день",
			date:     monday,
			time:     "10:00",
			schedule: nil,
			wantErr:  ErrOutOfHours,
		},
		{
			name:     "время до начала приема",
			date:     monday,
			time:     "08:30",
			schedule: &schedule,
			wantErr:  ErrOutOfHours,
		},
		{
			name:     "время после окончания приема",
			date:     monday,
			time:     "17:30",
			schedule: &schedule,
			wantErr:  ErrOutOfHours,
		},
		{
			name:     "прошедшая дата",
			date:     time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			time:     "10:00",
			schedule: &schedule,
			wantErr:  ErrPastDate,
		},
		{
			name:     "слот занят",
			date:     monday,
			time:     "10:00",
			schedule: &schedule,
			busy:     []string{"09:30", "10:00"},
			wantErr:  ErrSlotTaken,
		},
		{
			name:     "другой занятый слот не мешает",
			date:     monday,
			time:     "10:30",
			schedule: &schedule,
			busy:     []string{"09:30", "10:00"},
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(tt.date, tt.time, tt.schedule, tt.busy, today)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBooking() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBookingSameDayAllowed(t *testing.T) {
	// запись на сегодня не считается прошедшей датой
	today := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC)
	schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)

	if err := ValidateBooking(today, "10:00", &schedule, nil, today); err != nil {
		t.Errorf("ValidateBooking() = %v, want nil", err)
	}
}

func TestValidateBookingWrongWeekday(t *testing.T) {
	// расписание на понедельник не покрывает вторник
	tuesday := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)

	if err := ValidateBooking(tuesday, "10:00", &schedule, nil, today); !errors.Is(err, ErrOutOfHours) {
		t.Errorf("ValidateBooking() = %v, want ErrOutOfHours", err)
	}
}

func TestValidateBookingNotWorkingDay(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)
	schedule.IsWorking = false

	if err := ValidateBooking(monday, "10:00", &schedule, nil, today); !errors.Is(err, ErrOutOfHours) {
		t.Errorf("ValidateBooking() = %v, want ErrOutOfHours", err)
	}
}

func TestValidateBookingCheckOrder(t *testing.T) {
	// при нескольких нарушениях сначала сообщается о рабочих часах,
	// затем о дате, и только потом о занятости
	pastMonday := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)

	err := ValidateBooking(pastMonday, "08:00", &schedule, []string{"08:00"}, today)
	if !errors.Is(err, ErrOutOfHours) {
		t.Errorf("ValidateBooking() = %v, want ErrOutOfHours", err)
	}

	err = ValidateBooking(pastMonday, "10:00", &schedule, []string{"10:00"}, today)
	if !errors.Is(err, ErrPastDate) {
		t.Errorf("ValidateBooking() = %v, want ErrPastDate", err)
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr bool
	}{
		{name: "корректное расписание", mutate: func(s *Schedule) {}},
		{name: "начало равно концу", mutate: func(s *Schedule) { s.EndTime = s.StartTime }, wantErr: true},
		{name: "начало позже конца", mutate: func(s *Schedule) { s.StartTime = "18:00" }, wantErr: true},
		{name: "мусор вместо времени", mutate: func(s *Schedule) { s.StartTime = "девять" }, wantErr: true},
		{name: "слишком короткий слот", mutate: func(s *Schedule) { s.SlotDuration = 5 }, wantErr: true},
		{name: "слишком длинный слот", mutate: func(s *Schedule) { s.SlotDuration = 180 }, wantErr: true},
		{name: "минимальная длительность", mutate: func(s *Schedule) { s.SlotDuration = MinSlotDuration }},
		{name: "максимальная длительность", mutate: func(s *Schedule) { s.SlotDuration = MaxSlotDuration }},
		{name: "некорректный день недели", mutate: func(s *Schedule) { s.DayOfWeek = 7 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := workingSchedule(WeekdayMonday, "09:00", "17:00", 30)
			tt.mutate(&schedule)
			err := schedule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{"2026-01-05", WeekdayMonday},
		{"2026-01-06", WeekdayTuesday},
		{"2026-01-09", WeekdayFriday},
		{"2026-01-10", WeekdaySaturday},
		{"2026-01-11", WeekdaySunday},
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekdayOf(date); got != tt.want {
			t.Errorf("WeekdayOf(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusCancelled, false},
		{AppointmentStatusPending, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAppointmentIsUpcoming(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	future := Appointment{
		AppointmentDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "12:30",
	}
	if !future.IsUpcoming(now) {
		t.Error("запись через полчаса должна быть предстоящей")
	}

	past := Appointment{
		AppointmentDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "11:30",
	}
	if past.IsUpcoming(now) {
		t.Error("прошедшая запись не должна быть предстоящей")
	}
}
