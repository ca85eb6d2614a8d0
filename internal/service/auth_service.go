package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"
	"oaks-mart-backend/pkg/jwt"
	"oaks-mart-backend/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminAuthFailed    = errors.New("admin auth failed")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("target user not found")
)

type AuthService interface {
	Login(name, pin string) (*LoginResponse, error)
	RequireAdmin(name, pin string) (*model.User, error)
	CreateUser(req *CreateUserRequest) (*model.User, error)
	ChangePIN(targetName, newPIN string) (*model.User, error)
	ListUsers() ([]model.UserResponse, error)
	SeedDefaultAdmin(adminPIN string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

// CreateUserRequest carries a new user's credentials. The admin capability
// fields are checked separately by the handler before this reaches the service.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required"`
	PIN     string `json:"pin" validate:"required,pin"`
	IsAdmin bool   `json:"is_admin"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(name, pin string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByName(name)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPIN(pin) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates tokens issued before
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Name, user.IsAdmin, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// RequireAdmin is the per-request capability check used by admin-gated
// endpoints: name+PIN in every request, no session state.
func (s *authService) RequireAdmin(name, pin string) (*model.User, error) {
	if name == "" || pin == "" {
		return nil, ErrAdminAuthFailed
	}
	user, err := s.userRepo.FindByName(name)
	if err != nil {
		return nil, ErrAdminAuthFailed
	}
	if !user.CheckPIN(pin) || !user.IsAdmin {
		return nil, ErrAdminAuthFailed
	}
	return user, nil
}

func (s *authService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByName(req.Name); existing != nil {
		return nil, ErrUserExists
	}

	user := &model.User{
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
	}
	if err := user.SetPIN(req.PIN); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePIN(targetName, newPIN string) (*model.User, error) {
	user, err := s.userRepo.FindByName(targetName)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := user.SetPIN(newPIN); err != nil {
		return nil, errors.New("failed to hash new PIN")
	}
	if err := s.userRepo.UpdatePINHash(user.ID, user.PinHash); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// SeedDefaultAdmin creates the bootstrap admin when the user table is empty.
func (s *authService) SeedDefaultAdmin(adminPIN string) error {
	count, err := s.userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &model.User{Name: "admin", IsAdmin: true}
	if err := admin.SetPIN(adminPIN); err != nil {
		return err
	}
	return s.userRepo.Create(admin)
}
