package memory

import (
	"context"
	"time"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

var (
	_ repository.CashSessionRepository    = (*sessionRepo)(nil)
	_ repository.ServiceCatalogRepository = (*serviceRepo)(nil)
	_ repository.UserRepository           = (*userRepo)(nil)
)

type sessionRepo struct{ base }

func (r *sessionRepo) Create(_ context.Context, s *entity.CashSession) error {
	return r.do(func(st *state) error {
		key := dayKey(s.BusinessDay)
		if _, ok := st.sessions[key]; ok {
			return domain.Conflict("ya existe una sesión de caja para " + key)
		}
		st.sessions[key] = *s
		return nil
	})
}

func (r *sessionRepo) GetByDay(_ context.Context, day time.Time) (*entity.CashSession, error) {
	var out *entity.CashSession
	err := r.do(func(st *state) error {
		if s, ok := st.sessions[dayKey(day)]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *sessionRepo) GetForUpdate(ctx context.Context, day time.Time) (*entity.CashSession, error) {
	return r.GetByDay(ctx, day)
}

func (r *sessionRepo) Close(_ context.Context, s *entity.CashSession) error {
	return r.do(func(st *state) error {
		key := dayKey(s.BusinessDay)
		if _, ok := st.sessions[key]; !ok {
			return domain.NotFound("sesión de caja no encontrada")
		}
		st.sessions[key] = *s
		return nil
	})
}

type serviceRepo struct{ base }

func (r *serviceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	var out *entity.Service
	err := r.do(func(st *state) error {
		if s, ok := st.services[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

type userRepo struct{ base }

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
