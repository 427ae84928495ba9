package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/pkg/validator"
)

type MedicalRecordServiceImpl struct {
	repo        repository.MedicalRecordRepository
	patientRepo repository.PatientRepository
	logger      *zap.Logger
}

func NewMedicalRecordService(
	repo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	logger *zap.Logger,
) *MedicalRecordServiceImpl {
	return &MedicalRecordServiceImpl{
		repo:        repo,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

func (s *MedicalRecordServiceImpl) Create(ctx context.Context, dto domain.CreateMedicalRecordDTO) (int64, error) {
	patient, err := s.patientRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		s.logger.Error("ошибка получения пациента при создании медзаписи", zap.Int64("patientID", dto.PatientID), zap.Error(err))
		return 0, errors.New("ошибка при создании медицинской записи")
	}
	if patient == nil {
		return 0, errors.New("пациент не найден")
	}

	// свободный текст попадает в карту пациента как есть, поэтому чистим его
	dto.Symptoms = validator.SanitizeString(dto.Symptoms)
	dto.Diagnosis = validator.SanitizeString(dto.Diagnosis)
	dto.Treatment = validator.SanitizeString(dto.Treatment)

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания медицинской записи", zap.Error(err))
		return 0, errors.New("ошибка при создании медицинской записи")
	}

	return id, nil
}

func (s *MedicalRecordServiceImpl) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения медицинской записи", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении медицинской записи")
	}
	if record == nil {
		return nil, errors.New("медицинская запись не найдена")
	}
	return record, nil
}

func (s *MedicalRecordServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("медицинская запись для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении медицинской записи")
	}
	if record == nil {
		return errors.New("медицинская запись не найдена")
	}

	if dto.Symptoms != nil {
		clean := validator.SanitizeString(*dto.Symptoms)
		dto.Symptoms = &clean
	}
	if dto.Diagnosis != nil {
		clean := validator.SanitizeString(*dto.Diagnosis)
		dto.Diagnosis = &clean
	}
	if dto.Treatment != nil {
		clean := validator.SanitizeString(*dto.Treatment)
		dto.Treatment = &clean
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления медицинской записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении медицинской записи")
	}

	return nil
}

func (s *MedicalRecordServiceImpl) Delete(ctx context.Context, id int64) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("медицинская запись для удаления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении медицинской записи")
	}
	if record == nil {
		return errors.New("медицинская запись не найдена")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления медицинской записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении медицинской записи")
	}

	return nil
}

func (s *MedicalRecordServiceImpl) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка медицинских записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка медицинских записей")
	}

	return records, total, nil
}
