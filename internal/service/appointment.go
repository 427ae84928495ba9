package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medcenter/internal/cache"
	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/pkg/email"
	"medcenter/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo         repository.AppointmentRepository
	scheduleRepo repository.ScheduleRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	slots        *cache.SlotCache
	mailer       *email.Sender
	logger       *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	scheduleRepo repository.ScheduleRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	slots *cache.SlotCache,
	mailer *email.Sender,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		slots:        slots,
		mailer:       mailer,
		logger:       logger,
	}
}

// Create проверяет запись через domain.ValidateBooking и сохраняет ее
// со статусом pending. Проверка против занятых слотов носит
// предварительный характер: параллельную запись на тот же слот
// отсекает уникальный индекс в БД, и репозиторий вернет ErrSlotTaken.
func (s *AppointmentServiceImpl) Create(ctx context.Context, createdBy *int64, dto domain.CreateAppointmentDTO) (int64, error) {
	date, err := time.Parse("2006-01-02", dto.AppointmentDate)
	if err != nil {
		return 0, errors.New("некорректный формат даты, ожидается ГГГГ-ММ-ДД")
	}

	if !validator.ValidateTimeOfDay(dto.AppointmentTime) {
		return 0, errors.New("некорректный формат времени, ожидается ЧЧ:ММ")
	}

	patient, err := s.patientRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		s.logger.Error("ошибка получения пациента при создании записи", zap.Int64("patientID", dto.PatientID), zap.Error(err))
		return 0, errors.New("ошибка при создании записи")
	}
	if patient == nil {
		return 0, errors.New("пациент не найден")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		s.logger.Error("ошибка получения врача при создании записи", zap.Int64("doctorID", dto.DoctorID), zap.Error(err))
		return 0, errors.New("ошибка при создании записи")
	}
	if doctor == nil || !doctor.IsActive {
		return 0, errors.New("врач не найден или не ведет прием")
	}

	schedule, err := s.scheduleRepo.GetByDoctorAndDay(ctx, dto.DoctorID, domain.WeekdayOf(date))
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("doctorID", dto.DoctorID), zap.Error(err))
		return 0, errors.New("ошибка при проверке доступности времени")
	}

	busy, err := s.repo.GetBusyTimes(ctx, dto.DoctorID, date)
	if err != nil {
		s.logger.Error("ошибка получения занятых слотов", zap.Int64("doctorID", dto.DoctorID), zap.Error(err))
		return 0, errors.New("ошибка при проверке доступности времени")
	}

	if err := domain.ValidateBooking(date, dto.AppointmentTime, schedule, busy, time.Now()); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, createdBy, dto, date)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return 0, err
		}
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return 0, errors.New("ошибка при создании записи")
	}

	s.slots.Invalidate(ctx, dto.DoctorID, dto.AppointmentDate)

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении записи")
	}
	if appointment == nil {
		return nil, errors.New("запись не найдена")
	}
	return appointment, nil
}

// Update переносит запись на другие дату и время или правит ее поля.
// Перенос проходит те же проверки, что и создание, при этом текущий
// слот самой записи занятым не считается.
func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("запись для обновления не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении записи")
	}
	if appointment == nil {
		return errors.New("запись не найдена")
	}
	if appointment.Status == domain.AppointmentStatusCancelled {
		return errors.New("нельзя изменить отмененную запись")
	}

	newDate := appointment.AppointmentDate
	newTime := appointment.AppointmentTime
	var datePtr *time.Time

	if dto.AppointmentDate != nil {
		parsed, err := time.Parse("2006-01-02", *dto.AppointmentDate)
		if err != nil {
			return errors.New("некорректный формат даты, ожидается ГГГГ-ММ-ДД")
		}
		newDate = parsed
		datePtr = &parsed
	}

	if dto.AppointmentTime != nil {
		if !validator.ValidateTimeOfDay(*dto.AppointmentTime) {
			return errors.New("некорректный формат времени, ожидается ЧЧ:ММ")
		}
		newTime = *dto.AppointmentTime
	}

	if dto.AppointmentDate != nil || dto.AppointmentTime != nil {
		schedule, err := s.scheduleRepo.GetByDoctorAndDay(ctx, appointment.DoctorID, domain.WeekdayOf(newDate))
		if err != nil {
			s.logger.Error("ошибка получения расписания", zap.Int64("doctorID", appointment.DoctorID), zap.Error(err))
			return errors.New("ошибка при проверке доступности времени")
		}

		busy, err := s.repo.GetBusyTimes(ctx, appointment.DoctorID, newDate)
		if err != nil {
			s.logger.Error("ошибка получения занятых слотов", zap.Int64("doctorID", appointment.DoctorID), zap.Error(err))
			return errors.New("ошибка при проверке доступности времени")
		}

		sameDay := newDate.Format("2006-01-02") == appointment.AppointmentDate.Format("2006-01-02")
		filtered := busy[:0]
		for _, t := range busy {
			if sameDay && t == appointment.AppointmentTime {
				continue
			}
			filtered = append(filtered, t)
		}

		if err := domain.ValidateBooking(newDate, newTime, schedule, filtered, time.Now()); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, id, dto, datePtr); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return err
		}
		s.logger.Error("ошибка обновления записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении записи")
	}

	s.slots.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate.Format("2006-01-02"))
	s.slots.Invalidate(ctx, appointment.DoctorID, newDate.Format("2006-01-02"))

	return nil
}

// Confirm переводит запись из pending в confirmed и отправляет пациенту
// письмо с подтверждением, если настроен SMTP.
func (s *AppointmentServiceImpl) Confirm(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("запись для подтверждения не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при подтверждении записи")
	}
	if appointment == nil {
		return errors.New("запись не найдена")
	}
	if !appointment.CanTransitionTo(domain.AppointmentStatusConfirmed) {
		return errors.New("подтвердить можно только ожидающую запись")
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusConfirmed); err != nil {
		s.logger.Error("ошибка подтверждения записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при подтверждении записи")
	}

	s.sendConfirmationEmail(ctx, appointment)

	return nil
}

// Cancel освобождает слот: запись переходит в cancelled и перестает
// учитываться уникальным индексом, время снова доступно для брони.
func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("запись для отмены не найдена", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене записи")
	}
	if appointment == nil {
		return errors.New("запись не найдена")
	}
	if !appointment.CanTransitionTo(domain.AppointmentStatusCancelled) {
		return errors.New("запись уже отменена")
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusCancelled); err != nil {
		s.logger.Error("ошибка отмены записи", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при отмене записи")
	}

	s.slots.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate.Format("2006-01-02"))

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка записей")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка записей")
	}

	return appointments, total, nil
}

// GetFreeSlots возвращает свободные времена начала приема врача на
// дату: сетка слотов из расписания минус занятые времена. Результат
// кэшируется на короткий TTL.
func (s *AppointmentServiceImpl) GetFreeSlots(ctx context.Context, doctorID int64, dateStr string) ([]string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.New("некорректный формат даты, ожидается ГГГГ-ММ-ДД")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		s.logger.Error("ошибка получения врача", zap.Int64("doctorID", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении свободных слотов")
	}
	if doctor == nil {
		return nil, errors.New("врач не найден")
	}

	if cached, ok := s.slots.Get(ctx, doctorID, dateStr); ok {
		return cached, nil
	}

	schedule, err := s.scheduleRepo.GetByDoctorAndDay(ctx, doctorID, domain.WeekdayOf(date))
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("doctorID", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении свободных слотов")
	}
	if schedule == nil || !schedule.IsWorking {
		return []string{}, nil
	}

	busy, err := s.repo.GetBusyTimes(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("ошибка получения занятых слотов", zap.Int64("doctorID", doctorID), zap.Error(err))
		return nil, errors.New("ошибка при получении свободных слотов")
	}

	busySet := make(map[string]struct{}, len(busy))
	for _, t := range busy {
		busySet[t] = struct{}{}
	}

	free := []string{}
	for _, slot := range domain.ComputeSlots(*schedule) {
		if _, taken := busySet[slot]; !taken {
			free = append(free, slot)
		}
	}

	s.slots.Set(ctx, doctorID, dateStr, free)

	return free, nil
}

func (s *AppointmentServiceImpl) sendConfirmationEmail(ctx context.Context, appointment *domain.Appointment) {
	if !s.mailer.Enabled() {
		return
	}

	patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
	if err != nil || patient == nil || patient.Email == "" {
		return
	}

	doctorName := appointment.DoctorName
	if doctorName == "" {
		if doctor, err := s.doctorRepo.GetByID(ctx, appointment.DoctorID); err == nil && doctor != nil {
			doctorName = doctor.Name
		}
	}

	subject := "Запись подтверждена"
	body := fmt.Sprintf(
		"<p>Здравствуйте, %s!</p><p>Ваша запись к врачу %s на %s в %s подтверждена.</p>",
		patient.FirstName,
		doctorName,
		appointment.AppointmentDate.Format("02.01.2006"),
		appointment.AppointmentTime,
	)

	if err := s.mailer.Send(patient.Email, subject, body); err != nil {
		s.logger.Warn("не удалось отправить письмо о подтверждении",
			zap.Int64("appointmentID", appointment.ID),
			zap.Error(err),
		)
	}
}
