package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medcenter/internal/domain"
)

type MedicalRecordRepo struct {
	db *pgxpool.Pool
}

func NewMedicalRecordRepository(db *pgxpool.Pool) *MedicalRecordRepo {
	return &MedicalRecordRepo{db: db}
}

const medicalRecordColumns = `id, patient_id, doctor_id, appointment_id, record_date, symptoms, diagnosis, treatment, cost, treatment_type`

func (r *MedicalRecordRepo) scanRecord(row pgx.Row) (*domain.MedicalRecord, error) {
	var m domain.MedicalRecord
	err := row.Scan(
		&m.ID,
		&m.PatientID,
		&m.DoctorID,
		&m.AppointmentID,
		&m.RecordDate,
		&m.Symptoms,
		&m.Diagnosis,
		&m.Treatment,
		&m.Cost,
		&m.TreatmentType,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicalRecordRepo) Create(ctx context.Context, dto domain.CreateMedicalRecordDTO) (int64, error) {
	treatmentType := dto.TreatmentType
	if treatmentType == "" {
		treatmentType = domain.TreatmentTypeOutpatient
	}

	var id int64
	query := `
		INSERT INTO medical_records (patient_id, doctor_id, appointment_id, record_date, symptoms, diagnosis, treatment, cost, treatment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		dto.PatientID,
		dto.DoctorID,
		dto.AppointmentID,
		time.Now(),
		dto.Symptoms,
		dto.Diagnosis,
		dto.Treatment,
		dto.Cost,
		treatmentType,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания медицинской записи: %w", err)
	}

	return id, nil
}

func (r *MedicalRecordRepo) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	query := `SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения медицинской записи: %w", err)
	}

	return record, nil
}

func (r *MedicalRecordRepo) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Symptoms != nil {
		setValues = append(setValues, fmt.Sprintf("symptoms = $%d", argId))
		args = append(args, *dto.Symptoms)
		argId++
	}

	if dto.Diagnosis != nil {
		setValues = append(setValues, fmt.Sprintf("diagnosis = $%d", argId))
		args = append(args, *dto.Diagnosis)
		argId++
	}

	if dto.Treatment != nil {
		setValues = append(setValues, fmt.Sprintf("treatment = $%d", argId))
		args = append(args, *dto.Treatment)
		argId++
	}

	if dto.Cost != nil {
		setValues = append(setValues, fmt.Sprintf("cost = $%d", argId))
		args = append(args, *dto.Cost)
		argId++
	}

	if dto.TreatmentType != nil {
		setValues = append(setValues, fmt.Sprintf("treatment_type = $%d", argId))
		args = append(args, *dto.TreatmentType)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setQuery := "UPDATE medical_records SET " + strings.Join(setValues, ", ") + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления медицинской записи: %w", err)
	}

	return nil
}

func (r *MedicalRecordRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM medical_records WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления медицинской записи: %w", err)
	}

	return nil
}

func (r *MedicalRecordRepo) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error) {
	countQuery := `SELECT COUNT(*) FROM medical_records WHERE 1=1`
	selectQuery := `SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE 1=1`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.PatientID != nil {
		conditions += fmt.Sprintf(" AND patient_id = $%d", argPos)
		args = append(args, *filter.PatientID)
		argPos++
	}

	if filter.DoctorID != nil {
		conditions += fmt.Sprintf(" AND doctor_id = $%d", argPos)
		args = append(args, *filter.DoctorID)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY record_date LIMIT $%d OFFSET $%d", argPos, argPos+1)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения количества медицинских записей: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка медицинских записей: %w", err)
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования медицинской записи: %w", err)
		}
		records = append(records, *record)
	}

	return records, total, rows.Err()
}
