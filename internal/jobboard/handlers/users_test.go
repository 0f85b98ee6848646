package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Register(t *testing.T) {
	valid := map[string]any{"name": "Alex", "email": "alex@mail.example", "password": "s3cret", "role": "applicant"}

	tests := []struct {
		name       string
		body       any
		serviceErr error
		wantStatus int
		wantError  string
		wantCalled bool
	}{
		{name: "registered", body: valid, wantStatus: http.StatusCreated, wantCalled: true},
		{
			name:       "missing password",
			body:       map[string]any{"name": "Alex", "email": "alex@mail.example", "role": "applicant"},
			wantStatus: http.StatusBadRequest,
			wantError:  "All fields are required",
		},
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
			wantError:  "All fields are required",
		},
		{
			name:       "unknown role",
			body:       map[string]any{"name": "Alex", "email": "alex@mail.example", "password": "x", "role": "admin"},
			wantStatus: http.StatusBadRequest,
			wantError:  `Invalid role: "admin". Valid roles are: APPLICANT, EMPLOYER`,
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "duplicate email",
			body:       valid,
			serviceErr: e.New(e.ErrConflict, `User with this email: "alex@mail.example" already exists`),
			wantStatus: http.StatusConflict,
			wantError:  `User with this email: "alex@mail.example" already exists`,
			wantCalled: true,
		},
		{
			name:       "store failure is hidden",
			body:       valid,
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  msgInternal,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			users := &mockUserController{register: func(_ context.Context, reg *models.Registration) (*models.User, error) {
				called = true
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &models.User{ID: uuid.New(), Name: reg.Name, Email: reg.Email, Role: models.RoleApplicant}, nil
			}}
			router := newTestRouter(t, services{users: users}, nil)

			rec, body := do(t, router, http.MethodPost, "/api/users/register", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Equal(t, "User registered successfully", body["message"])
			user := body["user"].(map[string]any)
			assert.Equal(t, "APPLICANT", user["role"])
			assert.NotContains(t, user, "password")
			assert.NotContains(t, user, "passwordHash")
		})
	}
}

func TestHandler_Login(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Erin", Email: "erin@corp.example", Role: models.RoleEmployer}
	users := &mockUserController{login: func(_ context.Context, email, password string) (string, *models.User, error) {
		switch {
		case email != user.Email:
			return "", nil, e.New(e.ErrNotFound, "Invalid credentials")
		case password != "right":
			return "", nil, e.New(e.ErrUnauthorized, "Invalid credentials")
		}
		return "signed-token", user, nil
	}}
	router := newTestRouter(t, services{users: users}, nil)

	rec, body := do(t, router, http.MethodPost, "/api/users/login", map[string]string{"email": user.Email, "password": "right"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "signed-token", body["token"])
	assert.Equal(t, user.ID.String(), body["user"].(map[string]any)["id"])

	rec, body = do(t, router, http.MethodPost, "/api/users/login", map[string]string{"email": user.Email, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])

	rec, _ = do(t, router, http.MethodPost, "/api/users/login", map[string]string{"email": "nobody@example.com", "password": "right"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, router, http.MethodPost, "/api/users/login", map[string]string{"email": user.Email})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", body["error"])
}

func TestHandler_Protected(t *testing.T) {
	me := employerIdentity(nil)
	router := newTestRouter(t, services{}, me)

	rec, body := do(t, router, http.MethodGet, "/api/protected", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello Erin, you have access to this protected route!", body["message"])
	assert.Equal(t, me.ID.String(), body["user"].(map[string]any)["id"])

	router = newTestRouter(t, services{}, nil)
	rec, body = do(t, router, http.MethodGet, "/api/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, token missing", body["error"])
}

func TestRouter_RequestIDAndNotFound(t *testing.T) {
	router := newTestRouter(t, services{}, nil)

	rec, body := do(t, router, http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", body["error"])
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
}
