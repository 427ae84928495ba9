package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medcenter/config"
	"medcenter/internal/repository"
	"medcenter/pkg/email"
)

// ReminderService рассылает напоминания о предстоящих подтвержденных
// приемах. Запускается планировщиком по расписанию из конфигурации,
// каждое письмо отмечается флагом reminder_sent и не отправляется
// повторно.
type ReminderService struct {
	repo   repository.AppointmentRepository
	mailer *email.Sender
	cfg    config.ReminderConfig
	logger *zap.Logger
}

func NewReminderService(
	repo repository.AppointmentRepository,
	mailer *email.Sender,
	cfg config.ReminderConfig,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		repo:   repo,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
	}
}

// SendReminders обрабатывает приемы в окне [сегодня, сегодня+window],
// у которых напоминание еще не отправлялось. Ошибка отправки одного
// письма не прерывает рассылку остальных.
func (s *ReminderService) SendReminders(ctx context.Context) {
	if !s.mailer.Enabled() {
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := now.Add(s.cfg.Window)

	appointments, err := s.repo.ListForReminder(ctx, from, to)
	if err != nil {
		s.logger.Error("ошибка получения записей для напоминаний", zap.Error(err))
		return
	}

	sent := 0
	for _, appointment := range appointments {
		if !appointment.IsUpcoming(now) {
			continue
		}
		if appointment.PatientEmail == "" {
			continue
		}

		subject := "Напоминание о приеме"
		body := fmt.Sprintf(
			"<p>Здравствуйте, %s!</p><p>Напоминаем о приеме у врача %s: %s в %s.</p>",
			appointment.PatientName,
			appointment.DoctorName,
			appointment.AppointmentDate.Format("02.01.2006"),
			appointment.AppointmentTime,
		)

		if err := s.mailer.Send(appointment.PatientEmail, subject, body); err != nil {
			s.logger.Warn("не удалось отправить напоминание",
				zap.Int64("appointmentID", appointment.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.MarkReminderSent(ctx, appointment.ID); err != nil {
			s.logger.Error("ошибка отметки напоминания",
				zap.Int64("appointmentID", appointment.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
	}

	if sent > 0 {
		s.logger.Info("напоминания отправлены", zap.Int("count", sent))
	}
}
