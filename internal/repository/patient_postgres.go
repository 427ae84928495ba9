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

// ErrPatientExists возвращается при нарушении уникальности email
// пациента.
var ErrPatientExists = errors.New("пациент с таким email уже существует")

type PatientRepo struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{db: db}
}

const patientColumns = `id, is_active, slug, first_name, last_name, middle_name, email, phone, address, birth_date, gender, blood_type, allergies, emergency_contact, insurance_number, created_at, updated_at`

func (r *PatientRepo) scanPatient(row pgx.Row) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID,
		&p.IsActive,
		&p.Slug,
		&p.FirstName,
		&p.LastName,
		&p.MiddleName,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.BirthDate,
		&p.Gender,
		&p.BloodType,
		&p.Allergies,
		&p.EmergencyContact,
		&p.InsuranceNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) Create(ctx context.Context, patient domain.Patient) (int64, error) {
	var id int64
	query := `
		INSERT INTO patients (is_active, slug, first_name, last_name, middle_name, email, phone, address, birth_date, gender, blood_type, allergies, emergency_contact, insurance_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		patient.IsActive,
		patient.Slug,
		patient.FirstName,
		patient.LastName,
		patient.MiddleName,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.BirthDate,
		patient.Gender,
		patient.BloodType,
		patient.Allergies,
		patient.EmergencyContact,
		patient.InsuranceNumber,
		time.Now(),
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrPatientExists
		}
		return 0, fmt.Errorf("ошибка создания пациента: %w", err)
	}

	return id, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	patient, err := r.scanPatient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения пациента: %w", err)
	}

	return patient, nil
}

func (r *PatientRepo) GetBySlug(ctx context.Context, slug string) (*domain.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE slug = $1`

	patient, err := r.scanPatient(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения пациента: %w", err)
	}

	return patient, nil
}

func (r *PatientRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM patients WHERE slug = $1 AND id != $2)`

	err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки слага: %w", err)
	}

	return exists, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.FirstName != nil {
		setValues = append(setValues, fmt.Sprintf("first_name = $%d", argId))
		args = append(args, *dto.FirstName)
		argId++
	}

	if dto.LastName != nil {
		setValues = append(setValues, fmt.Sprintf("last_name = $%d", argId))
		args = append(args, *dto.LastName)
		argId++
	}

	if dto.MiddleName != nil {
		setValues = append(setValues, fmt.Sprintf("middle_name = $%d", argId))
		args = append(args, *dto.MiddleName)
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

	if dto.Address != nil {
		setValues = append(setValues, fmt.Sprintf("address = $%d", argId))
		args = append(args, *dto.Address)
		argId++
	}

	if dto.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *dto.BirthDate)
		if err != nil {
			return errors.New("неверный формат даты рождения")
		}
		setValues = append(setValues, fmt.Sprintf("birth_date = $%d", argId))
		args = append(args, birthDate)
		argId++
	}

	if dto.Gender != nil {
		setValues = append(setValues, fmt.Sprintf("gender = $%d", argId))
		args = append(args, *dto.Gender)
		argId++
	}

	if dto.BloodType != nil {
		setValues = append(setValues, fmt.Sprintf("blood_type = $%d", argId))
		args = append(args, *dto.BloodType)
		argId++
	}

	if dto.Allergies != nil {
		setValues = append(setValues, fmt.Sprintf("allergies = $%d", argId))
		args = append(args, *dto.Allergies)
		argId++
	}

	if dto.EmergencyContact != nil {
		setValues = append(setValues, fmt.Sprintf("emergency_contact = $%d", argId))
		args = append(args, *dto.EmergencyContact)
		argId++
	}

	if dto.InsuranceNumber != nil {
		setValues = append(setValues, fmt.Sprintf("insurance_number = $%d", argId))
		args = append(args, *dto.InsuranceNumber)
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

	setQuery := "UPDATE patients SET " + strings.Join(setValues, ", ") + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPatientExists
		}
		return fmt.Errorf("ошибка обновления пациента: %w", err)
	}

	return nil
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE patients SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пациента: %w", err)
	}

	return nil
}

func (r *PatientRepo) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	countQuery := `SELECT COUNT(*) FROM patients WHERE 1=1`
	selectQuery := `SELECT ` + patientColumns + ` FROM patients WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.Query != nil {
		conditions += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argPos, argPos, argPos, argPos)
		args = append(args, "%"+*filter.Query+"%")
		argPos++
	}

	if filter.IsActive != nil {
		conditions += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *filter.IsActive)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", argPos, argPos+1)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества пациентов: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка пациентов: %w", err)
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		patient, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования пациента: %w", err)
		}
		patients = append(patients, *patient)
	}

	return patients, total, rows.Err()
}
