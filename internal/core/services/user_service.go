package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type UserService struct {
	userRepo ports.UserRepository
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("username %q already registered: %w", in.Username, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("email %q already registered: %w", in.Email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:                  uuid.NewString(),
		Username:            in.Username,
		Email:               in.Email,
		FullName:            in.FullName,
		HashedPassword:      string(hashed),
		Role:                in.Role,
		Department:          in.Department,
		ClearanceDepartment: in.ClearanceDepartment,
		CreatedAt:           time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *UserService) GetByTagID(ctx context.Context, tagID string) (*domain.User, error) {
	return s.userRepo.GetByTagID(ctx, tagID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx, 0, 0)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.ClearanceDepartment != nil {
		user.ClearanceDepartment = *in.ClearanceDepartment
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hashed)
	}

	if err := s.userRepo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id, actorUsername string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username == actorUsername {
		return nil, fmt.Errorf("cannot delete your own account: %w", domain.ErrForbidden)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}
