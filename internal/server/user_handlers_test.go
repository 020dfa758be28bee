package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"microsns/internal/models"
	"microsns/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SearchByName(ctx context.Context, keyword string, limit int) ([]models.User, error) {
	args := m.Called(ctx, keyword, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) (int64, error) {
	args := m.Called(ctx, id, hash)
	return args.Get(0).(int64), args.Error(1)
}

func decodeEnvelope(t *testing.T, resp *http.Response) models.Envelope {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env models.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newUserTestApp(mockRepo *MockUserRepository) *fiber.App {
	s := &Server{userRepo: mockRepo}
	s.userService = service.NewUserService(mockRepo, nil, nil)

	app := fiber.New()
	app.Post("/api/users/register", s.Register)
	app.Post("/api/users/login", s.Login)
	app.Post("/api/users/change-password", s.ChangePassword)
	app.Get("/api/users/search", s.SearchUsers)
	app.Get("/api/users/:id", s.GetUserProfile)
	return app
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, nil)
		mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil)
		app := newUserTestApp(mockRepo)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
			"name": "alice", "email": "a@x.com", "password": "pw123456",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.True(t, env.OK)
		data := env.Data.(map[string]any)
		assert.Equal(t, float64(1), data["user_id"])
	})

	t.Run("Missing Fields", func(t *testing.T) {
		app := newUserTestApp(new(MockUserRepository))

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
			"name": "alice",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.False(t, env.OK)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "a@x.com").
			Return(&models.User{ID: 2, Email: "a@x.com"}, nil)
		app := newUserTestApp(mockRepo)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/register", map[string]string{
			"name": "alice", "email": "a@x.com", "password": "pw123456",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "Email already registered", env.Error)
	})
}

func TestLogin(t *testing.T) {
	hash := mustHashPassword(t, "pw123456")

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "a@x.com").
			Return(&models.User{ID: 1, Name: "alice", Email: "a@x.com", Password: hash}, nil)
		app := newUserTestApp(mockRepo)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
			"email": "a@x.com", "password": "pw123456",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.True(t, env.OK)
		data := env.Data.(map[string]any)
		assert.Equal(t, float64(1), data["user_id"])
		// The password hash must never be serialized.
		_, exposed := data["password"]
		assert.False(t, exposed)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "a@x.com").
			Return(&models.User{ID: 1, Email: "a@x.com", Password: hash}, nil)
		app := newUserTestApp(mockRepo)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
			"email": "a@x.com", "password": "wrong",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "Invalid email or password", env.Error)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, nil)
		app := newUserTestApp(mockRepo)

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/login", map[string]string{
			"email": "ghost@x.com", "password": "pw123456",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSearchUsers(t *testing.T) {
	t.Run("Matches", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("SearchByName", mock.Anything, "ali", 20).
			Return([]models.User{{ID: 1, Name: "alice"}}, nil)
		app := newUserTestApp(mockRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/users/search?keyword=ali", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.True(t, env.OK)
		assert.Len(t, env.Data.([]any), 1)
	})

	t.Run("Blank Keyword", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("SearchByName", mock.Anything, "", 20).
			Return([]models.User{}, nil)
		app := newUserTestApp(mockRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/users/search", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGetUserProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Name: "alice", Email: "a@x.com"}, nil)
		app := newUserTestApp(mockRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		data := env.Data.(map[string]any)
		assert.Equal(t, "alice", data["name"])
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", uint(99)))
		app := newUserTestApp(mockRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/users/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		app := newUserTestApp(new(MockUserRepository))

		req := httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestChangePasswordHandler_Validation(t *testing.T) {
	app := newUserTestApp(new(MockUserRepository))

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/change-password", map[string]any{
		"oldPassword": "a", "newPassword": "b",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
