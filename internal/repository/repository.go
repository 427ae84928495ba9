package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"medcenter/internal/domain"
)

type Repositories struct {
	User          UserRepository
	Auth          AuthRepository
	Hospital      HospitalRepository
	Doctor        DoctorRepository
	Patient       PatientRepository
	Schedule      ScheduleRepository
	Appointment   AppointmentRepository
	MedicalRecord MedicalRecordRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Auth:          NewAuthRepository(db),
		Hospital:      NewHospitalRepository(db),
		Doctor:        NewDoctorRepository(db),
		Patient:       NewPatientRepository(db),
		Schedule:      NewScheduleRepository(db),
		Appointment:   NewAppointmentRepository(db),
		MedicalRecord: NewMedicalRecordRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital domain.Hospital) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Hospital, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Hospital, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, dto domain.UpdateHospitalDTO) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.HospitalFilter) ([]domain.Hospital, int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient domain.Patient) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Patient, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, schedule domain.Schedule) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByDoctorAndDay(ctx context.Context, doctorID int64, day domain.Weekday) (*domain.Schedule, error)
	Update(ctx context.Context, schedule domain.Schedule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, createdBy *int64, dto domain.CreateAppointmentDTO, date time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO, date *time.Time) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	GetBusyTimes(ctx context.Context, doctorID int64, date time.Time) ([]string, error)
	ListForReminder(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, record domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, int, error)
}
