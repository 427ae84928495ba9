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

// ErrDoctorExists возвращается при нарушении уникальности email или
// пары (имя, больница).
var ErrDoctorExists = errors.New("врач с таким именем или email уже существует")

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{db: db}
}

const doctorColumns = `d.id, d.name, d.specialization, d.email, d.phone, d.bio, d.photo_url, d.experience_years, d.rating, d.is_active, d.hospital_id, h.name, d.created_at, d.updated_at`

func (r *DoctorRepo) scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Email,
		&d.Phone,
		&d.Bio,
		&d.PhotoURL,
		&d.ExperienceYears,
		&d.Rating,
		&d.IsActive,
		&d.HospitalID,
		&d.HospitalName,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO doctors (name, specialization, email, phone, bio, experience_years, rating, is_active, hospital_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.Name,
		dto.Specialization,
		dto.Email,
		dto.Phone,
		dto.Bio,
		dto.ExperienceYears,
		dto.Rating,
		true,
		dto.HospitalID,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDoctorExists
		}
		return 0, fmt.Errorf("ошибка создания врача: %w", err)
	}

	return id, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.id = $1
	`

	doctor, err := r.scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения врача: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Specialization != nil {
		setValues = append(setValues, fmt.Sprintf("specialization = $%d", argId))
		args = append(args, *dto.Specialization)
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

	if dto.Bio != nil {
		setValues = append(setValues, fmt.Sprintf("bio = $%d", argId))
		args = append(args, *dto.Bio)
		argId++
	}

	if dto.ExperienceYears != nil {
		setValues = append(setValues, fmt.Sprintf("experience_years = $%d", argId))
		args = append(args, *dto.ExperienceYears)
		argId++
	}

	if dto.Rating != nil {
		setValues = append(setValues, fmt.Sprintf("rating = $%d", argId))
		args = append(args, *dto.Rating)
		argId++
	}

	if dto.HospitalID != nil {
		setValues = append(setValues, fmt.Sprintf("hospital_id = $%d", argId))
		args = append(args, *dto.HospitalID)
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

	setQuery := "UPDATE doctors SET " + strings.Join(setValues, ", ") + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDoctorExists
		}
		return fmt.Errorf("ошибка обновления врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `UPDATE doctors SET photo_url = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE doctors SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления врача: %w", err)
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	countQuery := `SELECT COUNT(*) FROM doctors d WHERE 1=1`
	selectQuery := `
		SELECT ` + doctorColumns + `
		FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE 1=1
	`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.Query != nil {
		conditions += fmt.Sprintf(" AND (d.name ILIKE $%d OR d.specialization ILIKE $%d OR d.bio ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+*filter.Query+"%")
		argPos++
	}

	if filter.Specialization != nil {
		conditions += fmt.Sprintf(" AND d.specialization = $%d", argPos)
		args = append(args, *filter.Specialization)
		argPos++
	}

	if filter.HospitalID != nil {
		conditions += fmt.Sprintf(" AND d.hospital_id = $%d", argPos)
		args = append(args, *filter.HospitalID)
		argPos++
	}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND d.is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY d.name LIMIT $%d OFFSET $%d", argPos, argPos+1)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества врачей: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка врачей: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования врача: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	return doctors, total, rows.Err()
}
