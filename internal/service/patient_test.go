package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

func newTestPatientService() (*PatientServiceImpl, *fakePatientRepo) {
	repo := newFakePatientRepo()
	return NewPatientService(repo, zap.NewNop()), repo
}

func validPatientDTO() domain.CreatePatientDTO {
	return domain.CreatePatientDTO{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Phone:     "+79991234567",
		Address:   "ул. Ленина, 1",
		BirthDate: "1990-05-12",
	}
}

func TestPatientCreate(t *testing.T) {
	svc, repo := newTestPatientService()

	id, err := svc.Create(context.Background(), validPatientDTO())
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	p := repo.patients[id]
	if p.Slug != "petrov-ivan" {
		t.Errorf("слаг = %q, want petrov-ivan", p.Slug)
	}
	if !p.IsActive {
		t.Error("новый пациент должен быть активным")
	}
}

// Полные тезки получают слаг с числовым суффиксом.
func TestPatientCreateSlugCollision(t *testing.T) {
	svc, repo := newTestPatientService()
	ctx := context.Background()

	first, err := svc.Create(ctx, validPatientDTO())
	if err != nil {
		t.Fatalf("первый пациент: %v", err)
	}

	dto := validPatientDTO()
	dto.Email = "ivan2@example.com"
	second, err := svc.Create(ctx, dto)
	if err != nil {
		t.Fatalf("второй пациент: %v", err)
	}

	if got := repo.patients[first].Slug; got != "petrov-ivan" {
		t.Errorf("слаг первого = %q, want petrov-ivan", got)
	}
	if got := repo.patients[second].Slug; got != "petrov-ivan-2" {
		t.Errorf("слаг второго = %q, want petrov-ivan-2", got)
	}
}

func TestPatientCreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestPatientService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validPatientDTO()); err != nil {
		t.Fatalf("первый пациент: %v", err)
	}

	dto := validPatientDTO()
	dto.FirstName = "Петр"
	if _, err := svc.Create(ctx, dto); !errors.Is(err, repository.ErrPatientExists) {
		t.Errorf("Create() с занятым email = %v, want ErrPatientExists", err)
	}
}

func TestPatientCreateValidation(t *testing.T) {
	svc, _ := newTestPatientService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.CreatePatientDTO)
	}{
		{
			name:   "дата рождения в будущем",
			mutate: func(dto *domain.CreatePatientDTO) { dto.BirthDate = "2099-01-01" },
		},
		{
			name:   "некорректный формат даты",
			mutate: func(dto *domain.CreatePatientDTO) { dto.BirthDate = "12.05.1990" },
		},
		{
			name:   "некорректный email",
			mutate: func(dto *domain.CreatePatientDTO) { dto.Email = "не-email" },
		},
		{
			name:   "некорректный телефон",
			mutate: func(dto *domain.CreatePatientDTO) { dto.Phone = "123" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validPatientDTO()
			tt.mutate(&dto)
			if _, err := svc.Create(ctx, dto); err == nil {
				t.Error("Create() должен вернуть ошибку")
			}
		})
	}
}
