package memory

import (
	"context"
	"time"

	"github.com/oksasatya/movierama/internal/domain/entity"
	"github.com/oksasatya/movierama/internal/domain/repository"
)

type UserRepository struct {
	do  access
	now func() time.Time
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.do(func(st *state) error {
		for _, existing := range st.users {
			if existing.Name == u.Name {
				return repository.ErrDuplicate
			}
		}
		st.nextUserID++
		u.ID = st.nextUserID
		u.CreatedAt = r.now().UTC()
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByName(_ context.Context, name string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		for _, u := range st.users {
			if u.Name == name {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

var _ repository.UserRepository = (*UserRepository)(nil)
