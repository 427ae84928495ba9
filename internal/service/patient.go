package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/pkg/validator"
)

type PatientServiceImpl struct {
	repo   repository.PatientRepository
	logger *zap.Logger
}

func NewPatientService(repo repository.PatientRepository, logger *zap.Logger) *PatientServiceImpl {
	return &PatientServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Create заводит карту пациента. Слаг формируется из фамилии и имени,
// дата рождения не может быть в будущем.
func (s *PatientServiceImpl) Create(ctx context.Context, dto domain.CreatePatientDTO) (int64, error) {
	birthDate, err := time.Parse("2006-01-02", dto.BirthDate)
	if err != nil {
		return 0, errors.New("некорректный формат даты рождения, ожидается ГГГГ-ММ-ДД")
	}
	if birthDate.After(time.Now()) {
		return 0, errors.New("дата рождения не может быть в будущем")
	}
	if !validator.ValidateEmail(dto.Email) {
		return 0, errors.New("некорректный email")
	}
	if !validator.ValidatePhone(dto.Phone) {
		return 0, errors.New("некорректный номер телефона")
	}

	slug, err := s.generateSlug(ctx, dto.LastName+" "+dto.FirstName, 0)
	if err != nil {
		s.logger.Error("ошибка генерации слага пациента", zap.Error(err))
		return 0, errors.New("ошибка при создании пациента")
	}

	patient := domain.Patient{
		IsActive:         true,
		Slug:             slug,
		FirstName:        dto.FirstName,
		LastName:         dto.LastName,
		MiddleName:       dto.MiddleName,
		Email:            dto.Email,
		Phone:            validator.FormatPhone(dto.Phone),
		Address:          dto.Address,
		BirthDate:        birthDate,
		Gender:           dto.Gender,
		BloodType:        dto.BloodType,
		Allergies:        dto.Allergies,
		EmergencyContact: dto.EmergencyContact,
		InsuranceNumber:  dto.InsuranceNumber,
	}

	id, err := s.repo.Create(ctx, patient)
	if err != nil {
		if errors.Is(err, repository.ErrPatientExists) {
			return 0, err
		}
		s.logger.Error("ошибка создания пациента", zap.Error(err))
		return 0, errors.New("ошибка при создании пациента")
	}

	return id, nil
}

func (s *PatientServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения пациента", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении пациента")
	}
	if patient == nil {
		return nil, errors.New("пациент не найден")
	}
	return patient, nil
}

func (s *PatientServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Patient, error) {
	patient, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("ошибка получения пациента по слагу", zap.String("slug", slug), zap.Error(err))
		return nil, errors.New("ошибка при получении пациента")
	}
	if patient == nil {
		return nil, errors.New("пациент не найден")
	}
	return patient, nil
}

func (s *PatientServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пациент для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении пациента")
	}
	if patient == nil {
		return errors.New("пациент не найден")
	}

	if dto.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *dto.BirthDate)
		if err != nil {
			return errors.New("некорректный формат даты рождения, ожидается ГГГГ-ММ-ДД")
		}
		if birthDate.After(time.Now()) {
			return errors.New("дата рождения не может быть в будущем")
		}
	}

	if dto.Phone != nil {
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, repository.ErrPatientExists) {
			return err
		}
		s.logger.Error("ошибка обновления пациента", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении пациента")
	}

	return nil
}

func (s *PatientServiceImpl) Delete(ctx context.Context, id int64) error {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пациент для удаления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении пациента")
	}
	if patient == nil {
		return errors.New("пациент не найден")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления пациента", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении пациента")
	}

	return nil
}

func (s *PatientServiceImpl) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	patients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка пациентов", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка пациентов")
	}

	return patients, total, nil
}

func (s *PatientServiceImpl) generateSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	base := validator.Slugify(name)
	if base == "" {
		base = "patient"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
