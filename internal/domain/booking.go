package domain

import (
	"errors"
	"time"
)

// Причины отказа в записи. Все они возвращаются пользователю как
// валидационные сообщения и не являются фатальными для процесса.
var (
	ErrOutOfHours      = errors.New("время приема не входит в рабочие часы врача")
	ErrPastDate        = errors.New("нельзя записаться на прошедшую дату")
	ErrSlotTaken       = errors.New("на это время уже есть запись к этому врачу")
	ErrInvalidSchedule = errors.New("время начала должно быть раньше времени окончания")
)

// ComputeSlots возвращает упорядоченный список времен начала приема
// для расписания: start + k*duration, пока очередной слот целиком
// помещается в рабочее окно. Если окно короче одного слота,
// список пуст. Функция не имеет состояния и пересчитывается заново
// при каждом вызове.
func ComputeSlots(schedule Schedule) []string {
	start, err := time.Parse("15:04", schedule.StartTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse("15:04", schedule.EndTime)
	if err != nil {
		return nil
	}

	duration := time.Duration(schedule.SlotDuration) * time.Minute

	slots := []string{}
	for current := start; !current.Add(duration).After(end); current = current.Add(duration) {
		slots = append(slots, current.Format("15:04"))
	}

	return slots
}

// ValidateBooking решает, допустима ли запись (врач, дата, время).
// Проверки выполняются последовательно против текущего состояния БД:
//  1. рабочее расписание на день недели существует и время входит
//     в окно [start, end] — иначе ErrOutOfHours;
//  2. дата не в прошлом — иначе ErrPastDate;
//  3. время не занято записью со статусом pending/confirmed —
//     иначе ErrSlotTaken.
//
// Валидатор — только предварительная проверка; арбитром гонок служит
// частичный уникальный индекс в БД.
func ValidateBooking(date time.Time, timeStr string, schedule *Schedule, busyTimes []string, today time.Time) error {
	if schedule == nil || !schedule.IsWorking || schedule.DayOfWeek != WeekdayOf(date) {
		return ErrOutOfHours
	}

	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return ErrOutOfHours
	}
	start, err := time.Parse("15:04", schedule.StartTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	end, err := time.Parse("15:04", schedule.EndTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	if t.Before(start) || t.After(end) {
		return ErrOutOfHours
	}

	if truncateToDay(date).Before(truncateToDay(today)) {
		return ErrPastDate
	}

	for _, busy := range busyTimes {
		if busy == timeStr {
			return ErrSlotTaken
		}
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
