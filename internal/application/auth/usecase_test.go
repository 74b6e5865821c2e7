package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	c := *user
	r.users = append(r.users, &c)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	if offset >= len(r.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	out := make([]*entity.User, 0, end-offset)
	for _, u := range r.users[offset:end] {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

type fakePlaceRepo struct {
	places map[string]*entity.Place
}

func (r *fakePlaceRepo) Create(place *entity.Place) error {
	r.places[place.ID] = place
	return nil
}

func (r *fakePlaceRepo) GetByID(id string) (*entity.Place, error) {
	p, ok := r.places[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePlaceRepo) List() ([]*entity.Place, error) {
	out := make([]*entity.Place, 0, len(r.places))
	for _, p := range r.places {
		out = append(out, p)
	}
	return out, nil
}

func newAuthUC(users *fakeUserRepo) *auth.AuthUseCase {
	places := &fakePlaceRepo{places: map[string]*entity.Place{
		"lugar-1": {ID: "lugar-1", Name: "Planta 1"},
	}}
	return auth.NewAuthUseCase(users, places, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "farmacia-api-test",
	})
}

func seedUser(id, username, role string, placeID *string) *entity.User {
	now := time.Now()
	return &entity.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$hash-irrelevante",
		FirstName:    "Ana",
		LastName:     "García",
		Role:         role,
		PlaceID:      placeID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ListUsers: listado de personal
// ──────────────────────────────────────────────────────────────────────────────

func TestListUsers_DevuelvePersonalSinCamposSensibles(t *testing.T) {
	lugar := "lugar-1"
	users := &fakeUserRepo{users: []*entity.User{
		seedUser("u-1", "admin", entity.RoleAdmin, nil),
		seedUser("u-2", "dr.lopez", entity.RoleDoctor, &lugar),
	}}
	uc := newAuthUC(users)

	list, err := uc.ListUsers(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "admin", list[0].Username)
	assert.Equal(t, entity.RoleAdmin, list[0].Role)
	assert.Empty(t, list[0].PlaceID, "el admin no tiene lugar asignado")

	assert.Equal(t, "dr.lopez", list[1].Username)
	assert.Equal(t, "lugar-1", list[1].PlaceID, "el médico expone su lugar asignado")
}

func TestListUsers_Paginacion(t *testing.T) {
	users := &fakeUserRepo{users: []*entity.User{
		seedUser("u-1", "admin", entity.RoleAdmin, nil),
		seedUser("u-2", "staff1", entity.RoleStaff, nil),
		seedUser("u-3", "staff2", entity.RoleStaff, nil),
	}}
	uc := newAuthUC(users)

	list, err := uc.ListUsers(dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "staff2", list[0].Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser: reglas de alta
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_MedicoRequiereLugar(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{})

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "dr.lopez",
		Password: "secreta123",
		Role:     entity.RoleDoctor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_LugarInexistente(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{})

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "dr.lopez",
		Password: "secreta123",
		Role:     entity.RoleDoctor,
		PlaceID:  "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
