package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/internal/storage"
	"medcenter/pkg/validator"
)

type DoctorServiceImpl struct {
	repo         repository.DoctorRepository
	hospitalRepo repository.HospitalRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
}

func NewDoctorService(
	repo repository.DoctorRepository,
	hospitalRepo repository.HospitalRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:         repo,
		hospitalRepo: hospitalRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	hospital, err := s.hospitalRepo.GetByID(ctx, dto.HospitalID)
	if err != nil {
		s.logger.Error("ошибка получения больницы при создании врача", zap.Int64("hospitalID", dto.HospitalID), zap.Error(err))
		return 0, errors.New("ошибка при создании врача")
	}
	if hospital == nil {
		return 0, errors.New("больница не найдена")
	}

	if dto.Phone != "" {
		dto.Phone = validator.FormatPhone(dto.Phone)
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		if errors.Is(err, repository.ErrDoctorExists) {
			return 0, err
		}
		s.logger.Error("ошибка создания врача", zap.Error(err))
		return 0, errors.New("ошибка при создании врача")
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении врача")
	}
	if doctor == nil {
		return nil, errors.New("врач не найден")
	}
	return doctor, nil
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("врач для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении врача")
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if dto.HospitalID != nil {
		hospital, err := s.hospitalRepo.GetByID(ctx, *dto.HospitalID)
		if err != nil {
			s.logger.Error("ошибка получения больницы при обновлении врача", zap.Int64("hospitalID", *dto.HospitalID), zap.Error(err))
			return errors.New("ошибка при обновлении врача")
		}
		if hospital == nil {
			return errors.New("больница не найдена")
		}
	}

	if dto.Phone != nil {
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, repository.ErrDoctorExists) {
			return err
		}
		s.logger.Error("ошибка обновления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении врача")
	}

	return nil
}

func (s *DoctorServiceImpl) Delete(ctx context.Context, id int64) error {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("врач для удаления не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении врача")
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении врача")
	}

	return nil
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	doctors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка врачей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка врачей")
	}

	return doctors, total, nil
}

func (s *DoctorServiceImpl) UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("врач для загрузки фото не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, "doctors", filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	if doctor.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото врача", zap.Int64("id", id), zap.Error(err))
		}
	}

	if err := s.repo.UpdatePhoto(ctx, id, url); err != nil {
		s.logger.Error("ошибка сохранения URL фото врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	return nil
}

func (s *DoctorServiceImpl) DeletePhoto(ctx context.Context, id int64) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("врач для удаления фото не найден", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}
	if doctor == nil {
		return errors.New("врач не найден")
	}
	if doctor.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, doctor.PhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	if err := s.repo.UpdatePhoto(ctx, id, ""); err != nil {
		s.logger.Error("ошибка очистки URL фото врача", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	return nil
}
