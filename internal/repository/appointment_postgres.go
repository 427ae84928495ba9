package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medcenter/internal/domain"
)

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

const appointmentColumns = `a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time, a.status, a.reason, a.notes, a.price, a.reminder_sent, a.created_by, a.created_at, a.updated_at`

func (r *AppointmentRepo) scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Status,
		&a.Reason,
		&a.Notes,
		&a.Price,
		&a.ReminderSent,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create сохраняет запись со статусом pending. Гонки на один и тот же
// слот разрешает частичный уникальный индекс (doctor_id, date, time)
// по активным статусам: нарушение транслируется в ErrSlotTaken.
func (r *AppointmentRepo) Create(ctx context.Context, createdBy *int64, dto domain.CreateAppointmentDTO, date time.Time) (int64, error) {
	var id int64
	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, status, reason, price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.PatientID,
		dto.DoctorID,
		date,
		dto.AppointmentTime,
		domain.AppointmentStatusPending,
		dto.Reason,
		dto.Price,
		createdBy,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.ErrSlotTaken
		}
		return 0, fmt.Errorf("ошибка создания записи: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1`

	appointment, err := r.scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO, date *time.Time) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if date != nil {
		setValues = append(setValues, fmt.Sprintf("appointment_date = $%d", argId))
		args = append(args, *date)
		argId++
	}

	if dto.AppointmentTime != nil {
		setValues = append(setValues, fmt.Sprintf("appointment_time = $%d", argId))
		args = append(args, *dto.AppointmentTime)
		argId++
	}

	if dto.Reason != nil {
		setValues = append(setValues, fmt.Sprintf("reason = $%d", argId))
		args = append(args, *dto.Reason)
		argId++
	}

	if dto.Notes != nil {
		setValues = append(setValues, fmt.Sprintf("notes = $%d", argId))
		args = append(args, *dto.Notes)
		argId++
	}

	if dto.Price != nil {
		setValues = append(setValues, fmt.Sprintf("price = $%d", argId))
		args = append(args, *dto.Price)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE appointments SET " + strings.Join(setValues, ", ") + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		WHERE 1=1
	`

	conditions, args := appointmentConditions(filter)
	query += conditions

	argPos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY a.appointment_date, a.appointment_time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	return appointments, rows.Err()
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	query := `SELECT COUNT(*) FROM appointments a WHERE 1=1`

	conditions, args := appointmentConditions(filter)
	query += conditions

	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка получения количества записей: %w", err)
	}

	return total, nil
}

func appointmentConditions(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions string
	var args []interface{}
	argPos := 1

	if filter.PatientID != nil {
		conditions += fmt.Sprintf(" AND a.patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND a.doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND a.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND a.appointment_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND a.appointment_date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	return conditions, args
}

// GetBusyTimes возвращает занятые времена врача на дату: записи со
// статусом pending или confirmed.
func (r *AppointmentRepo) GetBusyTimes(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status IN ('pending', 'confirmed')
		ORDER BY appointment_time
	`

	rows, err := r.db.Query(ctx, query, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения занятых слотов: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("ошибка сканирования слотов: %w", err)
		}
		times = append(times, t)
	}

	return times, rows.Err()
}

func (r *AppointmentRepo) ListForReminder(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `, p.email, p.last_name || ' ' || p.first_name, d.name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.status = 'confirmed'
		AND a.reminder_sent = false
		AND a.appointment_date >= $1
		AND a.appointment_date <= $2
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей для напоминаний: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		err := rows.Scan(
			&a.ID,
			&a.PatientID,
			&a.DoctorID,
			&a.AppointmentDate,
			&a.AppointmentTime,
			&a.Status,
			&a.Reason,
			&a.Notes,
			&a.Price,
			&a.ReminderSent,
			&a.CreatedBy,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.PatientEmail,
			&a.PatientName,
			&a.DoctorName,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		appointments = append(appointments, a)
	}

	return appointments, rows.Err()
}

func (r *AppointmentRepo) MarkReminderSent(ctx context.Context, id int64) error {
	query := `UPDATE appointments SET reminder_sent = true, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка отметки напоминания: %w", err)
	}

	return nil
}
