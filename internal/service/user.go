package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workoutapp/backend/internal/db"
	"github.com/workoutapp/backend/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries a client-facing message for a rejected field.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

type UserService struct {
	store  UserStore
	hasher *PasswordHasher
}

func NewUserService(store UserStore, hasher *PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Bio:          req.Bio,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if conflictErr := uniqueViolation(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, err
	}
	return created, nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func validateRegisterRequest(req model.RegisterUserRequest) error {
	if req.Username == "" {
		return ValidationError("username is required")
	}
	if len(req.Username) > 50 {
		return ValidationError("username cannot be greater than 50 characters")
	}
	if req.Email == "" {
		return ValidationError("email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return ValidationError("invalid email format")
	}
	if req.Password == "" {
		return ValidationError("password is required")
	}
	return nil
}

func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}
