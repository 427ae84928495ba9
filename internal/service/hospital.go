package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/internal/storage"
	"medcenter/pkg/validator"
)

type HospitalServiceImpl struct {
	repo        repository.HospitalRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewHospitalService(
	repo repository.HospitalRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *HospitalServiceImpl {
	return &HospitalServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Create регистрирует больницу. Слаг формируется из названия, при
// коллизии к нему добавляется числовой суффикс.
func (s *HospitalServiceImpl) Create(ctx context.Context, dto domain.CreateHospitalDTO) (int64, error) {
	if dto.StartHour >= dto.EndHour {
		return 0, errors.New("час открытия должен быть раньше часа закрытия")
	}
	if !validator.ValidateEmail(dto.Email) {
		return 0, errors.New("некорректный email")
	}
	if dto.Phone != "" && !validator.ValidatePhone(dto.Phone) {
		return 0, errors.New("некорректный номер телефона")
	}

	slug, err := s.generateSlug(ctx, dto.Name, 0)
	if err != nil {
		s.logger.Error("ошибка генерации слага больницы", zap.Error(err))
		return 0, errors.New("ошибка при создании больницы")
	}

	hospital := domain.Hospital{
		IsActive:    true,
		Name:        dto.Name,
		Address:     dto.Address,
		Email:       dto.Email,
		Phone:       validator.FormatPhone(dto.Phone),
		StartHour:   dto.StartHour,
		EndHour:     dto.EndHour,
		Slug:        slug,
		Description: dto.Description,
	}

	id, err := s.repo.Create(ctx, hospital)
	if err != nil {
		if errors.Is(err, repository.ErrHospitalExists) {
			return 0, err
		}
		s.logger.Error("ошибка создания больницы", zap.Error(err))
		return 0, errors.New("ошибка при создании больницы")
	}

	return id, nil
}

func (s *HospitalServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения больницы", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении больницы")
	}
	if hospital == nil {
		return nil, errors.New("больница не найдена")
	}
	return hospital, nil
}

func (s *HospitalServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Hospital, error) {
	hospital, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("ошибка получения больницы по слагу", zap.String("slug", slug), zap.Error(err))
		return nil, errors.New("ошибка при получении больницы")
	}
	if hospital == nil {
		return nil, errors.New("больница не найдена")
	}
	return hospital, nil
}

func (s *HospitalServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateHospitalDTO) error {
	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("больница для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении больницы")
	}
	if hospital == nil {
		return errors.New("больница не найдена")
	}

	startHour := hospital.StartHour
	endHour := hospital.EndHour
	if dto.StartHour != nil {
		startHour = *dto.StartHour
	}
	if dto.EndHour != nil {
		endHour = *dto.EndHour
	}
	if startHour >= endHour {
		return errors.New("час открытия должен быть раньше часа закрытия")
	}

	if dto.Phone != nil {
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, repository.ErrHospitalExists) {
			return err
		}
		s.logger.Error("ошибка обновления больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении больницы")
	}

	return nil
}

func (s *HospitalServiceImpl) Delete(ctx context.Context, id int64) error {
	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("больница для удаления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении больницы")
	}
	if hospital == nil {
		return errors.New("больница не найдена")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении больницы")
	}

	return nil
}

func (s *HospitalServiceImpl) List(ctx context.Context, filter domain.HospitalFilter) ([]domain.Hospital, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	hospitals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка больниц", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка больниц")
	}

	return hospitals, total, nil
}

func (s *HospitalServiceImpl) UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("больница для загрузки фото не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}
	if hospital == nil {
		return errors.New("больница не найдена")
	}

	url, err := s.fileStorage.UploadFile(ctx, photo, "hospitals", filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	if hospital.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, hospital.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото больницы", zap.Int64("id", id), zap.Error(err))
		}
	}

	if err := s.repo.UpdatePhoto(ctx, id, url); err != nil {
		s.logger.Error("ошибка сохранения URL фото больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при загрузке фото")
	}

	return nil
}

func (s *HospitalServiceImpl) DeletePhoto(ctx context.Context, id int64) error {
	if s.fileStorage == nil {
		return errors.New("файловое хранилище не настроено")
	}

	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("больница для удаления фото не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}
	if hospital == nil {
		return errors.New("больница не найдена")
	}
	if hospital.PhotoURL == "" {
		return nil
	}

	if err := s.fileStorage.DeleteFile(ctx, hospital.PhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	if err := s.repo.UpdatePhoto(ctx, id, ""); err != nil {
		s.logger.Error("ошибка очистки URL фото больницы", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	return nil
}

func (s *HospitalServiceImpl) generateSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	base := validator.Slugify(name)
	if base == "" {
		base = "hospital"
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
