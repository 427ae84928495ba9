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

// ErrHospitalExists возвращается при нарушении уникальности названия
// или email больницы.
var ErrHospitalExists = errors.New("больница с таким названием или email уже существует")

type HospitalRepo struct {
	db *pgxpool.Pool
}

func NewHospitalRepository(db *pgxpool.Pool) *HospitalRepo {
	return &HospitalRepo{db: db}
}

const hospitalColumns = `id, is_active, name, photo_url, address, email, phone, start_hour, end_hour, slug, description, created_at, updated_at`

func (r *HospitalRepo) scanHospital(row pgx.Row) (*domain.Hospital, error) {
	var h domain.Hospital
	err := row.Scan(
		&h.ID,
		&h.IsActive,
		&h.Name,
		&h.PhotoURL,
		&h.Address,
		&h.Email,
		&h.Phone,
		&h.StartHour,
		&h.EndHour,
		&h.Slug,
		&h.Description,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HospitalRepo) Create(ctx context.Context, hospital domain.Hospital) (int64, error) {
	var id int64
	query := `
		INSERT INTO hospitals (is_active, name, photo_url, address, email, phone, start_hour, end_hour, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		hospital.IsActive,
		hospital.Name,
		hospital.PhotoURL,
		hospital.Address,
		hospital.Email,
		hospital.Phone,
		hospital.StartHour,
		hospital.EndHour,
		hospital.Slug,
		hospital.Description,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrHospitalExists
		}
		return 0, fmt.Errorf("ошибка создания больницы: %w", err)
	}

	return id, nil
}

func (r *HospitalRepo) GetByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`

	hospital, err := r.scanHospital(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения больницы: %w", err)
	}

	return hospital, nil
}

func (r *HospitalRepo) GetBySlug(ctx context.Context, slug string) (*domain.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE slug = $1`

	hospital, err := r.scanHospital(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения больницы: %w", err)
	}

	return hospital, nil
}

func (r *HospitalRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM hospitals WHERE slug = $1 AND id != $2)`

	err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки слага: %w", err)
	}

	return exists, nil
}

func (r *HospitalRepo) Update(ctx context.Context, id int64, dto domain.UpdateHospitalDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Address != nil {
		setValues = append(setValues, fmt.Sprintf("address = $%d", argId))
		args = append(args, *dto.Address)
		argId++
	}

	if dto.Email != nil {
		setValues = append(setValues, fmt.Sprintf("email = $%d", argId))
		args = append(args, *dto.Email)
		argId++
	}

	if dto.Phone != nil {
		setValues = append(setValues, fmt.Sprintf("phone = $%d", argId))
		args = append(args, *dto.Phone)
		argId++
	}

	if dto.StartHour != nil {
		setValues = append(setValues, fmt.Sprintf("start_hour = $%d", argId))
		args = append(args, *dto.StartHour)
		argId++
	}

	if dto.EndHour != nil {
		setValues = append(setValues, fmt.Sprintf("end_hour = $%d", argId))
		args = append(args, *dto.EndHour)
		argId++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argId))
		args = append(args, *dto.Description)
		argId++
	}

	if dto.IsActive != nil {
		setValues = append(setValues, fmt.Sprintf("is_active = $%d", argId))
		args = append(args, *dto.IsActive)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE hospitals SET " + strings.Join(setValues, ", ") + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrHospitalExists
		}
		return fmt.Errorf("ошибка обновления больницы: %w", err)
	}

	return nil
}

func (r *HospitalRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE hospitals SET photo_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото больницы: %w", err)
	}

	return nil
}

func (r *HospitalRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE hospitals SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления больницы: %w", err)
	}

	return nil
}

func (r *HospitalRepo) List(ctx context.Context, filter domain.HospitalFilter) ([]domain.Hospital, int, error) {
	countQuery := `SELECT COUNT(*) FROM hospitals WHERE 1=1`
	selectQuery := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.Query != nil {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR address ILIKE $%d OR description ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+*filter.Query+"%")
		argPos++
	}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	if filter.OpenNow {
		conditions += fmt.Sprintf(" AND start_hour <= $%d AND end_hour > $%d", argPos, argPos)
		args = append(args, time.Now().Hour())
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos, argPos+1)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества больниц: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка больниц: %w", err)
	}
	defer rows.Close()

	var hospitals []domain.Hospital
	for rows.Next() {
		hospital, err := r.scanHospital(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования больницы: %w", err)
		}
		hospitals = append(hospitals, *hospital)
	}

	return hospitals, total, rows.Err()
}
