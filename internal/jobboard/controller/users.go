package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"go.uber.org/zap"
)

const msgInvalidCredentials = "Invalid credentials"

// UserService registers accounts and logs them in.
type UserService struct {
	repo       UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

func NewUserService(repo UserRepository, tokens *auth.TokenManager, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.Named("user_service"),
	}
}

// Register creates an account. The role is fixed for the lifetime of the
// account.
func (s *UserService) Register(ctx context.Context, reg *models.Registration) (*models.User, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" || reg.Role == "" {
		return nil, e.New(e.ErrBadRequest, "All fields are required")
	}

	role, err := models.ParseRole(reg.Role)
	if err != nil {
		return nil, e.New(e.ErrBadRequest, err.Error())
	}

	exists, err := s.repo.UserExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, duplicateEmail(reg.Email)
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		Role:         role,
		ResumeURL:    reg.ResumeURL,
		Bio:          reg.Bio,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, duplicateEmail(reg.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, e.New(e.ErrBadRequest, "Email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", nil, e.New(e.ErrNotFound, msgInvalidCredentials)
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", nil, e.New(e.ErrUnauthorized, msgInvalidCredentials)
		}
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func duplicateEmail(email string) error {
	return e.Newf(e.ErrConflict, "User with this email: %q already exists", email)
}
