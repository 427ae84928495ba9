package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"medcenter/internal/domain"
)

type fakeMedicalRecordRepo struct {
	records map[int64]domain.MedicalRecord
	created []domain.CreateMedicalRecordDTO
	nextID  int64
}

func newFakeMedicalRecordRepo() *fakeMedicalRecordRepo {
	return &fakeMedicalRecordRepo{records: make(map[int64]domain.MedicalRecord), nextID: 1}
}

func (r *fakeMedicalRecordRepo) Create(ctx context.Context, dto domain.CreateMedicalRecordDTO) (int64, error) {
	r.created = append(r.created, dto)

	id := r.nextID
	r.nextID++
	r.records[id] = domain.MedicalRecord{
		ID:        id,
		PatientID: dto.PatientID,
		Symptoms:  dto.Symptoms,
		Diagnosis: dto.Diagnosis,
		Treatment: dto.Treatment,
	}
	return id, nil
}

func (r *fakeMedicalRecordRepo) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeMedicalRecordRepo) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	rec := r.records[id]
	if dto.Symptoms != nil {
		rec.Symptoms = *dto.Symptoms
	}
	if dto.Diagnosis != nil {
		rec.Diagnosis = *dto.Diagnosis
	}
	if dto.Treatment != nil {
		rec.Treatment = *dto.Treatment
	}
	r.records[id] = rec
	return nil
}

func (r *fakeMedicalRecordRepo) Delete(ctx context.Context, id int64) error {
	delete(r.records, id)
	return nil
}

func (r *fakeMedicalRecordRepo) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error) {
	return nil, 0, nil
}

func newTestMedicalRecordService() (*MedicalRecordServiceImpl, *fakeMedicalRecordRepo) {
	repo := newFakeMedicalRecordRepo()
	patientRepo := newFakePatientRepo()
	patientRepo.patients[1] = domain.Patient{ID: 1, FirstName: "Иван", LastName: "Петров", IsActive: true}
	return NewMedicalRecordService(repo, patientRepo, zap.NewNop()), repo
}

// Свободный текст медзаписи очищается от HTML-разметки и кавычек.
func TestMedicalRecordCreateSanitizesText(t *testing.T) {
	svc, repo := newTestMedicalRecordService()

	id, err := svc.Create(context.Background(), domain.CreateMedicalRecordDTO{
		PatientID: 1,
		Symptoms:  "<script>головная боль</script>",
		Diagnosis: "мигрень; \"аура\"",
		Treatment: "покой & анальгетики",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	rec := repo.records[id]
	if rec.Symptoms != "scriptголовная боль/script" {
		t.Errorf("symptoms = %q", rec.Symptoms)
	}
	if rec.Diagnosis != "мигрень аура" {
		t.Errorf("diagnosis = %q", rec.Diagnosis)
	}
	if rec.Treatment != "покой  анальгетики" {
		t.Errorf("treatment = %q", rec.Treatment)
	}
}

func TestMedicalRecordCreateUnknownPatient(t *testing.T) {
	svc, _ := newTestMedicalRecordService()

	_, err := svc.Create(context.Background(), domain.CreateMedicalRecordDTO{
		PatientID: 99,
		Symptoms:  "кашель",
		Diagnosis: "ОРВИ",
		Treatment: "обильное питье",
	})
	if err == nil {
		t.Error("Create() с несуществующим пациентом должен вернуть ошибку")
	}
}

func TestMedicalRecordUpdateSanitizesText(t *testing.T) {
	svc, repo := newTestMedicalRecordService()
	ctx := context.Background()

	id, err := svc.Create(ctx, domain.CreateMedicalRecordDTO{
		PatientID: 1,
		Symptoms:  "кашель",
		Diagnosis: "ОРВИ",
		Treatment: "обильное питье",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	diagnosis := "бронхит <острый>"
	if err := svc.Update(ctx, id, domain.UpdateMedicalRecordDTO{Diagnosis: &diagnosis}); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if got := repo.records[id].Diagnosis; got != "бронхит острый" {
		t.Errorf("diagnosis = %q, want %q", got, "бронхит острый")
	}
}
