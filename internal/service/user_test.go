package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/workoutapp/backend/internal/model"
)

type fakeUserStore struct {
	nextID int64
	users  map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.nextID++
	created := *user
	created.ID = s.nextID
	s.users[created.Username] = &created
	return &created, nil
}

func (s *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), NewPasswordHasher())

	cases := []struct {
		name string
		req  model.RegisterUserRequest
		msg  string
	}{
		{"missing username", model.RegisterUserRequest{Email: "a@b.com", Password: "pw"}, "username is required"},
		{"long username", model.RegisterUserRequest{Username: strings.Repeat("a", 51), Email: "a@b.com", Password: "pw"}, "username cannot be greater than 50 characters"},
		{"missing email", model.RegisterUserRequest{Username: "ana", Password: "pw"}, "email is required"},
		{"bad email", model.RegisterUserRequest{Username: "ana", Email: "not-an-email", Password: "pw"}, "invalid email format"},
		{"missing password", model.RegisterUserRequest{Username: "ana", Email: "a@b.com"}, "password is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			require.EqualError(t, err, tc.msg)
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	hasher := NewPasswordHasher()
	svc := NewUserService(newFakeUserStore(), hasher)

	user, err := svc.Register(context.Background(), model.RegisterUserRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEqual(t, "secret123", user.PasswordHash)
	require.True(t, hasher.Matches("secret123", user.PasswordHash))
}

func TestAuthenticateSymmetricFailures(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), NewPasswordHasher())

	_, err := svc.Register(context.Background(), model.RegisterUserRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Unknown username and wrong password produce the same error.
	_, err = svc.Authenticate(context.Background(), "nobody", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ana", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := svc.Authenticate(context.Background(), "ana", "secret123")
	require.NoError(t, err)
	require.Equal(t, "ana", user.Username)
}
