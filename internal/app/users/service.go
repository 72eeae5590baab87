package users

import (
	"context"
	"fmt"
	"strings"

	"musicstream/internal/models"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
	ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error)
}

// Service exposes user-related workflows.
type Service interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Playlists(ctx context.Context, id string) ([]models.Playlist, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	user.ID = strings.TrimSpace(user.ID)
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", models.ErrInvalid)
	}
	if user.Age < 0 {
		return models.User{}, fmt.Errorf("%w: age must not be negative", models.ErrInvalid)
	}
	return s.store.CreateUser(ctx, user)
}

func (s *service) Get(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.GetUser(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

func (s *service) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.User{}, fmt.Errorf("%w: name must not be blank", models.ErrInvalid)
		}
		patch.Name = &name
	}
	if patch.Age != nil && *patch.Age < 0 {
		return models.User{}, fmt.Errorf("%w: age must not be negative", models.ErrInvalid)
	}
	return s.store.UpdateUser(ctx, id, patch)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.DeleteUser(ctx, id)
}

// Playlists lists the playlists owned by the user. An unknown user yields an empty list.
func (s *service) Playlists(ctx context.Context, id string) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByUser(ctx, id)
}
