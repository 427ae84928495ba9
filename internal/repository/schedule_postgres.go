package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medcenter/internal/domain"
)

// ErrScheduleExists возвращается при попытке создать второе расписание
// врача на тот же день недели.
var ErrScheduleExists = errors.New("расписание на этот день недели уже существует")

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleColumns = `id, doctor_id, cabinet, day_of_week, start_time, end_time, is_working, slot_duration, reception_type, created_at, updated_at`

func (r *ScheduleRepo) scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.Cabinet,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.IsWorking,
		&s.SlotDuration,
		&s.ReceptionType,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	var id int64
	query := `
		INSERT INTO schedules (doctor_id, cabinet, day_of_week, start_time, end_time, is_working, slot_duration, reception_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		schedule.DoctorID,
		schedule.Cabinet,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.IsWorking,
		schedule.SlotDuration,
		schedule.ReceptionType,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrScheduleExists
		}
		return 0, fmt.Errorf("ошибка создания расписания: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`

	schedule, err := r.scanSchedule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	return schedule, nil
}

func (r *ScheduleRepo) GetByDoctorAndDay(ctx context.Context, doctorID int64, day domain.Weekday) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE doctor_id = $1 AND day_of_week = $2`

	schedule, err := r.scanSchedule(r.db.QueryRow(ctx, query, doctorID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	return schedule, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	query := `
		UPDATE schedules
		SET cabinet = $1, start_time = $2, end_time = $3, is_working = $4, slot_duration = $5, reception_type = $6, updated_at = $7
		WHERE id = $8
	`

	_, err := r.db.Exec(
		ctx,
		query,
		schedule.Cabinet,
		schedule.StartTime,
		schedule.EndTime,
		schedule.IsWorking,
		schedule.SlotDuration,
		schedule.ReceptionType,
		time.Now(),
		schedule.ID,
	)

	if err != nil {
		return fmt.Errorf("ошибка обновления расписания: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM schedules WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления расписания: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	countQuery := `SELECT COUNT(*) FROM schedules WHERE 1=1`
	selectQuery := `SELECT ` + scheduleColumns + ` FROM schedules WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	if filter.DayOfWeek != nil {
		conditions += fmt.Sprintf(" AND day_of_week = $%d", argPos)
		args = append(args, *filter.DayOfWeek)
		argPos++
	}

	if filter.IsWorking != nil {
		conditions += fmt.Sprintf(" AND is_working = $%d", argPos)
		args = append(args, *filter.IsWorking)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY doctor_id, day_of_week LIMIT $%d OFFSET $%d", argPos, argPos+1)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества расписаний: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка расписаний: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		schedule, err := r.scanSchedule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования расписания: %w", err)
		}
		schedules = append(schedules, *schedule)
	}

	return schedules, total, rows.Err()
}
