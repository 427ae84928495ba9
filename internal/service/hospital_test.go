package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"medcenter/internal/domain"
	"medcenter/internal/repository"
)

type fakeHospitalRepo struct {
	hospitals map[int64]domain.Hospital
	nextID    int64
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{hospitals: make(map[int64]domain.Hospital), nextID: 1}
}

func (r *fakeHospitalRepo) Create(ctx context.Context, hospital domain.Hospital) (int64, error) {
	for _, h := range r.hospitals {
		if h.Name == hospital.Name || h.Email == hospital.Email {
			return 0, repository.ErrHospitalExists
		}
	}

	id := r.nextID
	r.nextID++
	hospital.ID = id
	r.hospitals[id] = hospital
	return id, nil
}

func (r *fakeHospitalRepo) GetByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *fakeHospitalRepo) GetBySlug(ctx context.Context, slug string) (*domain.Hospital, error) {
	for _, h := range r.hospitals {
		if h.Slug == slug {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeHospitalRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, h := range r.hospitals {
		if h.Slug == slug && h.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHospitalRepo) Update(ctx context.Context, id int64, dto domain.UpdateHospitalDTO) error {
	return nil
}

func (r *fakeHospitalRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	return nil
}

func (r *fakeHospitalRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (r *fakeHospitalRepo) List(ctx context.Context, filter domain.HospitalFilter) ([]domain.Hospital, int, error) {
	return nil, 0, nil
}

func newTestHospitalService() (*HospitalServiceImpl, *fakeHospitalRepo) {
	repo := newFakeHospitalRepo()
	return NewHospitalService(repo, nil, zap.NewNop()), repo
}

func TestHospitalCreate(t *testing.T) {
	svc, repo := newTestHospitalService()

	id, err := svc.Create(context.Background(), domain.CreateHospitalDTO{
		Name:      "Городская больница",
		Address:   "ул. Ленина, 1",
		Email:     "info@gorbol.ru",
		StartHour: 8,
		EndHour:   20,
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	h := repo.hospitals[id]
	if h.Slug != "gorodskaya-bolnitsa" {
		t.Errorf("слаг = %q, want gorodskaya-bolnitsa", h.Slug)
	}
	if !h.IsActive {
		t.Error("новая больница должна быть активной")
	}
}

// Разные названия могут давать один и тот же слаг после транслитерации,
// тогда к слагу добавляется числовой суффикс.
func TestHospitalCreateSlugCollision(t *testing.T) {
	svc, repo := newTestHospitalService()
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateHospitalDTO{
		Name:      "ЦКБ №1",
		Address:   "ул. Ленина, 1",
		Email:     "one@ckb.ru",
		StartHour: 8,
		EndHour:   20,
	})
	if err != nil {
		t.Fatalf("первая больница: %v", err)
	}

	second, err := svc.Create(ctx, domain.CreateHospitalDTO{
		Name:      "ЦКБ-1",
		Address:   "ул. Ленина, 2",
		Email:     "two@ckb.ru",
		StartHour: 8,
		EndHour:   20,
	})
	if err != nil {
		t.Fatalf("вторая больница: %v", err)
	}

	if got := repo.hospitals[first].Slug; got != "tskb-1" {
		t.Errorf("слаг первой = %q, want tskb-1", got)
	}
	if got := repo.hospitals[second].Slug; got != "tskb-1-2" {
		t.Errorf("слаг второй = %q, want tskb-1-2", got)
	}
}

func TestHospitalCreateDuplicate(t *testing.T) {
	svc, _ := newTestHospitalService()
	ctx := context.Background()

	dto := domain.CreateHospitalDTO{
		Name:      "Городская больница",
		Address:   "ул. Ленина, 1",
		Email:     "info@gorbol.ru",
		StartHour: 8,
		EndHour:   20,
	}
	if _, err := svc.Create(ctx, dto); err != nil {
		t.Fatalf("первая больница: %v", err)
	}

	dto.Name = "Областная больница"
	if _, err := svc.Create(ctx, dto); !errors.Is(err, repository.ErrHospitalExists) {
		t.Errorf("Create() с занятым email = %v, want ErrHospitalExists", err)
	}
}

func TestHospitalCreateValidation(t *testing.T) {
	svc, _ := newTestHospitalService()
	ctx := context.Background()

	tests := []struct {
		name string
		dto  domain.CreateHospitalDTO
	}{
		{
			name: "часы работы перепутаны",
			dto:  domain.CreateHospitalDTO{Name: "Больница", Email: "a@b.ru", StartHour: 20, EndHour: 8},
		},
		{
			name: "некорректный email",
			dto:  domain.CreateHospitalDTO{Name: "Больница", Email: "не-email", StartHour: 8, EndHour: 20},
		},
		{
			name: "некорректный телефон",
			dto:  domain.CreateHospitalDTO{Name: "Больница", Email: "a@b.ru", Phone: "123", StartHour: 8, EndHour: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.dto); err == nil {
				t.Error("Create() должен вернуть ошибку")
			}
		})
	}
}
