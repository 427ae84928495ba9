package service

import (
	"context"

	"go.uber.org/zap"

	"medcenter/config"
	"medcenter/internal/cache"
	"medcenter/internal/domain"
	"medcenter/internal/repository"
	"medcenter/internal/storage"
	"medcenter/pkg/email"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	SlotCache   *cache.SlotCache
	Mailer      *email.Sender
}

type Services struct {
	User          UserService
	Auth          AuthService
	Hospital      HospitalService
	Doctor        DoctorService
	Patient       PatientService
	Schedule      ScheduleService
	Appointment   AppointmentService
	MedicalRecord MedicalRecordService
	Reminder      *ReminderService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:          NewUserService(deps.Repos.User, deps.Logger),
		Auth:          NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Hospital:      NewHospitalService(deps.Repos.Hospital, deps.FileStorage, deps.Logger),
		Doctor:        NewDoctorService(deps.Repos.Doctor, deps.Repos.Hospital, deps.FileStorage, deps.Logger),
		Patient:       NewPatientService(deps.Repos.Patient, deps.Logger),
		Schedule:      NewScheduleService(deps.Repos.Schedule, deps.Repos.Doctor, deps.Logger),
		Appointment:   NewAppointmentService(deps.Repos.Appointment, deps.Repos.Schedule, deps.Repos.Doctor, deps.Repos.Patient, deps.SlotCache, deps.Mailer, deps.Logger),
		MedicalRecord: NewMedicalRecordService(deps.Repos.MedicalRecord, deps.Repos.Patient, deps.Logger),
		Reminder:      NewReminderService(deps.Repos.Appointment, deps.Mailer, deps.Config.Reminder, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type HospitalService interface {
	Create(ctx context.Context, dto domain.CreateHospitalDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Hospital, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Hospital, error)
	Update(ctx context.Context, id int64, dto domain.UpdateHospitalDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.HospitalFilter) ([]domain.Hospital, int, error)
	UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, id int64) error
}

type DoctorService interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)
	UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, id int64) error
}

type PatientService interface {
	Create(ctx context.Context, dto domain.CreatePatientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Patient, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error)
}

type ScheduleService interface {
	Create(ctx context.Context, dto domain.CreateScheduleDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, dto domain.UpdateScheduleDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
	GetWeek(ctx context.Context, doctorID int64) ([]domain.Schedule, error)
}

type AppointmentService interface {
	Create(ctx context.Context, createdBy *int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	GetFreeSlots(ctx context.Context, doctorID int64, date string) ([]string, error)
}

type MedicalRecordService interface {
	Create(ctx context.Context, dto domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error)
}
