package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

type ScheduleServiceImpl struct {
	repo       repository.ScheduleRepository
	doctorRepo repository.DoctorRepository
	logger     *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

// Create заводит расписание врача на день недели. На пару
// (врач, день недели) допускается только одна строка, дубликат
// отклоняется репозиторием.
func (s *ScheduleServiceImpl) Create(ctx context.Context, dto domain.CreateScheduleDTO) (int64, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		s.logger.Error("ошибка получения врача при создании расписания", zap.Int64("doctorID", dto.DoctorID), zap.Error(err))
		return 0, errors.New("ошибка при создании расписания")
	}
	if doctor == nil {
		return 0, errors.New("врач не найден")
	}

	receptionType := dto.ReceptionType
	if receptionType == "" {
		receptionType = domain.ReceptionTypeOffline
	}

	schedule := domain.Schedule{
		DoctorID:      dto.DoctorID,
		Cabinet:       dto.Cabinet,
		DayOfWeek:     dto.DayOfWeek,
		StartTime:     dto.StartTime,
		EndTime:       dto.EndTime,
		IsWorking:     true,
		SlotDuration:  dto.SlotDuration,
		ReceptionType: receptionType,
	}

	if err := schedule.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, schedule)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleExists) {
			return 0, err
		}
		s.logger.Error("ошибка создания расписания", zap.Error(err))
		return 0, errors.New("ошибка при создании расписания")
	}

	return id, nil
}

func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении расписания")
	}
	if schedule == nil {
		return nil, errors.New("расписание не найдено")
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateScheduleDTO) error {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("расписание для обновления не найдено", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении расписания")
	}
	if schedule == nil {
		return errors.New("расписание не найдено")
	}

	if dto.Cabinet != nil {
		schedule.Cabinet = *dto.Cabinet
	}
	if dto.StartTime != nil {
		schedule.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		schedule.EndTime = *dto.EndTime
	}
	if dto.SlotDuration != nil {
		schedule.SlotDuration = *dto.SlotDuration
	}
	if dto.IsWorking != nil {
		schedule.IsWorking = *dto.IsWorking
	}
	if dto.ReceptionType != nil {
		schedule.ReceptionType = *dto.ReceptionType
	}

	if err := schedule.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, *schedule); err != nil {
		s.logger.Error("ошибка обновления расписания", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении расписания")
	}

	return nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id int64) error {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("расписание для удаления не найдено", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении расписания")
	}
	if schedule == nil {
		return errors.New("расписание не найдено")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления расписания", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении расписания")
	}

	return nil
}

func (s *ScheduleServiceImpl) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	schedules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка расписаний", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка расписаний")
	}

	return schedules, total, nil
}

// GetWeek возвращает все строки недельного расписания врача,
// упорядоченные по дню недели.
func (s *ScheduleServiceImpl) GetWeek(ctx context.Context, doctorID int64) ([]domain.Schedule, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("doctorID", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении расписания")
	}
	if doctor == nil {
		return nil, errors.New("врач не найден")
	}

	schedules, _, err := s.repo.List(ctx, domain.ScheduleFilter{
		DoctorID: &doctorID,
		Limit:    7,
	})
	if err != nil {
		s.logger.Error("ошибка получения недельного расписания", zap.Int64("doctorID", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении расписания")
	}

	return schedules, nil
}
