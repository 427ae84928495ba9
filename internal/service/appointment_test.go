package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

type fakeAppointmentRepo struct {
	appointments map[int64]domain.Appointment
	nextID       int64
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]domain.Appointment), nextID: 1}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, createdBy *int64, dto domain.CreateAppointmentDTO, date time.Time) (int64, error) {
	for _, a := range r.appointments {
		if a.DoctorID == dto.DoctorID &&
			a.AppointmentDate.Equal(date) &&
			a.AppointmentTime == dto.AppointmentTime &&
			a.Status != domain.AppointmentStatusCancelled {
			return 0, domain.ErrSlotTaken
		}
	}

	id := r.nextID
	r.nextID++
	r.appointments[id] = domain.Appointment{
		ID:              id,
		PatientID:       dto.PatientID,
		DoctorID:        dto.DoctorID,
		AppointmentDate: date,
		AppointmentTime: dto.AppointmentTime,
		Status:          domain.AppointmentStatusPending,
		Reason:          dto.Reason,
		Price:           dto.Price,
		CreatedBy:       createdBy,
	}
	return id, nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO, date *time.Time) error {
	a, ok := r.appointments[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	if date != nil {
		a.AppointmentDate = *date
	}
	if dto.AppointmentTime != nil {
		a.AppointmentTime = *dto.AppointmentTime
	}
	if dto.Reason != nil {
		a.Reason = *dto.Reason
	}
	if dto.Notes != nil {
		a.Notes = *dto.Notes
	}
	if dto.Price != nil {
		a.Price = dto.Price
	}
	r.appointments[id] = a
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return errors.New("запись не найдена")
	}
	a.Status = status
	r.appointments[id] = a
	return nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for _, a := range r.appointments {
		result = append(result, a)
	}
	return result, nil
}

func (r *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	return len(r.appointments), nil
}

func (r *fakeAppointmentRepo) GetBusyTimes(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	var times []string
	for _, a := range r.appointments {
		if a.DoctorID == doctorID &&
			a.AppointmentDate.Equal(date) &&
			a.Status != domain.AppointmentStatusCancelled {
			times = append(times, a.AppointmentTime)
		}
	}
	return times, nil
}

func (r *fakeAppointmentRepo) ListForReminder(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) MarkReminderSent(ctx context.Context, id int64) error {
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]domain.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]domain.Schedule)}
}

func scheduleKey(doctorID int64, day domain.Weekday) string {
	return fmt.Sprintf("%d:%d", doctorID, day)
}

func (r *fakeScheduleRepo) add(s domain.Schedule) {
	r.schedules[scheduleKey(s.DoctorID, s.DayOfWeek)] = s
}

func (r *fakeScheduleRepo) Create(ctx context.Context, schedule domain.Schedule) (int64, error) {
	r.add(schedule)
	return 1, nil
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	return nil, nil
}

func (r *fakeScheduleRepo) GetByDoctorAndDay(ctx context.Context, doctorID int64, day domain.Weekday) (*domain.Schedule, error) {
	s, ok := r.schedules[scheduleKey(doctorID, day)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, schedule domain.Schedule) error {
	return nil
}

func (r *fakeScheduleRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeScheduleRepo) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.Schedule, int, error) {
	return nil, 0, nil
}

type fakeDoctorRepo struct {
	doctors map[int64]domain.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[int64]domain.Doctor)}
}

func (r *fakeDoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	return 0, nil
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	return nil
}

func (r *fakeDoctorRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, int, error) {
	return nil, 0, nil
}

type fakePatientRepo struct {
	patients map[int64]domain.Patient
	nextID   int64
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[int64]domain.Patient), nextID: 1}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient domain.Patient) (int64, error) {
	for _, p := range r.patients {
		if p.Email == patient.Email {
			return 0, repository.ErrPatientExists
		}
	}

	id := r.nextID
	r.nextID++
	patient.ID = id
	r.patients[id] = patient
	return id, nil
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePatientRepo) GetBySlug(ctx context.Context, slug string) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, p := range r.patients {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	return nil, 0, nil
}

func newTestAppointmentService() (*AppointmentServiceImpl, *fakeAppointmentRepo, *fakeScheduleRepo) {
	appointmentRepo := newFakeAppointmentRepo()
	scheduleRepo := newFakeScheduleRepo()

	doctorRepo := newFakeDoctorRepo()
	doctorRepo.doctors[1] = domain.Doctor{ID: 1, Name: "Анна Смирнова", Specialization: "терапевт", IsActive: true, HospitalID: 1}

	patientRepo := newFakePatientRepo()
	patientRepo.patients[1] = domain.Patient{ID: 1, FirstName: "Иван", LastName: "Петров", Email: "ivan@example.com", IsActive: true}

	svc := NewAppointmentService(appointmentRepo, scheduleRepo, doctorRepo, patientRepo, nil, nil, zap.NewNop())
	return svc, appointmentRepo, scheduleRepo
}

// ближайший понедельник в будущем, чтобы запись не попадала в прошлое
func nextMonday() (time.Time, string) {
	date := time.Now().AddDate(0, 0, 1)
	for domain.WeekdayOf(date) != domain.WeekdayMonday {
		date = date.AddDate(0, 0, 1)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return date, date.Format("2006-01-02")
}

func TestAppointmentCreate(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()

	id, err := svc.Create(context.Background(), nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if id == 0 {
		t.Fatal("ожидался ненулевой ID")
	}
}

func TestAppointmentCreateSlotTaken(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()
	dto := domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	}

	if _, err := svc.Create(context.Background(), nil, dto); err != nil {
		t.Fatalf("первая запись: %v", err)
	}

	_, err := svc.Create(context.Background(), nil, dto)
	if !errors.Is(err, domain.ErrSlotTaken) {
		t.Errorf("Create() = %v, want ErrSlotTaken", err)
	}
}

func TestAppointmentCreateOutOfHours(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()

	_, err := svc.Create(context.Background(), nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "20:00",
	})
	if !errors.Is(err, domain.ErrOutOfHours) {
		t.Errorf("Create() = %v, want ErrOutOfHours", err)
	}
}

func TestAppointmentCreatePastDate(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	// понедельник в прошлом
	date := time.Now().AddDate(0, 0, -1)
	for domain.WeekdayOf(date) != domain.WeekdayMonday {
		date = date.AddDate(0, 0, -1)
	}

	_, err := svc.Create(context.Background(), nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: date.Format("2006-01-02"),
		AppointmentTime: "10:00",
	})
	if !errors.Is(err, domain.ErrPastDate) {
		t.Errorf("Create() = %v, want ErrPastDate", err)
	}
}

func TestAppointmentGetFreeSlots(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(domain.Schedule{
		DoctorID:      1,
		Cabinet:       101,
		DayOfWeek:     domain.WeekdayMonday,
		StartTime:     "09:00",
		EndTime:       "11:00",
		IsWorking:     true,
		SlotDuration:  30,
		ReceptionType: domain.ReceptionTypeOffline,
	})

	_, dateStr := nextMonday()
	ctx := context.Background()

	slots, err := svc.GetFreeSlots(ctx, 1, dateStr)
	if err != nil {
		t.Fatalf("GetFreeSlots() = %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("GetFreeSlots() = %v, want %v", slots, want)
	}

	if _, err := svc.Create(ctx, nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "09:30",
	}); err != nil {
		t.Fatalf("Create() = %v", err)
	}

	slots, err = svc.GetFreeSlots(ctx, 1, dateStr)
	if err != nil {
		t.Fatalf("GetFreeSlots() = %v", err)
	}
	want = []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("GetFreeSlots() после брони = %v, want %v", slots, want)
	}
}

func TestAppointmentGetFreeSlotsNoSchedule(t *testing.T) {
	svc, _, _ := newTestAppointmentService()

	_, dateStr := nextMonday()

	slots, err := svc.GetFreeSlots(context.Background(), 1, dateStr)
	if err != nil {
		t.Fatalf("GetFreeSlots() = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("ожидался пустой список, получено %v", slots)
	}
}

func TestAppointmentConfirmAndCancel(t *testing.T) {
	svc, repo, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()
	ctx := context.Background()

	id, err := svc.Create(ctx, nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := svc.Confirm(ctx, id); err != nil {
		t.Fatalf("Confirm() = %v", err)
	}
	if repo.appointments[id].Status != domain.AppointmentStatusConfirmed {
		t.Errorf("статус = %s, want confirmed", repo.appointments[id].Status)
	}

	// повторное подтверждение недопустимо
	if err := svc.Confirm(ctx, id); err == nil {
		t.Error("повторный Confirm() должен вернуть ошибку")
	}

	if err := svc.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel() = %v", err)
	}
	if repo.appointments[id].Status != domain.AppointmentStatusCancelled {
		t.Errorf("статус = %s, want cancelled", repo.appointments[id].Status)
	}

	// отмененная запись терминальна
	if err := svc.Cancel(ctx, id); err == nil {
		t.Error("повторный Cancel() должен вернуть ошибку")
	}
}

func TestAppointmentUpdateConfirmedReschedule(t *testing.T) {
	svc, repo, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()
	ctx := context.Background()

	id, err := svc.Create(ctx, nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if err := svc.Confirm(ctx, id); err != nil {
		t.Fatalf("Confirm() = %v", err)
	}

	// подтвержденную запись можно перенести, статус при этом сохраняется
	newTime := "11:00"
	if err := svc.Update(ctx, id, domain.UpdateAppointmentDTO{AppointmentTime: &newTime}); err != nil {
		t.Fatalf("Update() = %v", err)
	}
	if got := repo.appointments[id]; got.AppointmentTime != "11:00" || got.Status != domain.AppointmentStatusConfirmed {
		t.Errorf("после переноса время = %s, статус = %s", got.AppointmentTime, got.Status)
	}

	// прежний слот освободился
	if _, err := svc.Create(ctx, nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	}); err != nil {
		t.Errorf("Create() на освободившийся слот = %v, want nil", err)
	}
}

func TestAppointmentUpdateCancelledRejected(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()
	ctx := context.Background()

	id, err := svc.Create(ctx, nil, domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if err := svc.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel() = %v", err)
	}

	newTime := "11:00"
	if err := svc.Update(ctx, id, domain.UpdateAppointmentDTO{AppointmentTime: &newTime}); err == nil {
		t.Error("Update() отмененной записи должен вернуть ошибку")
	}
}

func TestAppointmentCancelFreesSlot(t *testing.T) {
	svc, _, scheduleRepo := newTestAppointmentService()
	scheduleRepo.add(workingScheduleFor(1, domain.WeekdayMonday))

	_, dateStr := nextMonday()
	ctx := context.Background()
	dto := domain.CreateAppointmentDTO{
		PatientID:       1,
		DoctorID:        1,
		AppointmentDate: dateStr,
		AppointmentTime: "10:00",
	}

	id, err := svc.Create(ctx, nil, dto)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := svc.Cancel(ctx, id); err != nil {
		t.Fatalf("Cancel() = %v", err)
	}

	// после отмены слот снова доступен
	if _, err := svc.Create(ctx, nil, dto); err != nil {
		t.Errorf("Create() после отмены = %v, want nil", err)
	}
}

func workingScheduleFor(doctorID int64, day domain.Weekday) domain.Schedule {
	return domain.Schedule{
		DoctorID:      doctorID,
		Cabinet:       101,
		DayOfWeek:     day,
		StartTime:     "09:00",
		EndTime:       "17:00",
		IsWorking:     true,
		SlotDuration:  30,
		ReceptionType: domain.ReceptionTypeOffline,
	}
}
