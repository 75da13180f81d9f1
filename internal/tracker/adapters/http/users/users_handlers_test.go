package users_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	trackerhttp "fittrack/internal/tracker/adapters/http"
	"fittrack/internal/tracker/domain/entities"
	"fittrack/internal/tracker/ports/api"
)

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserUseCase) AppendExercise(ctx context.Context, userID, description, duration, date string) (*entities.User, error) {
	args := m.Called(ctx, userID, description, duration, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockLogUseCase struct {
	mock.Mock
}

func (m *mockLogUseCase) GetUserLog(ctx context.Context, userID, from, to, limit string) (*api.UserLog, error) {
	args := m.Called(ctx, userID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.UserLog), args.Error(1)
}

func newTestApp(t *testing.T) (*fiber.App, *mockUserUseCase, *mockLogUseCase) {
	t.Helper()

	userService := new(mockUserUseCase)
	logService := new(mockLogUseCase)

	app := fiber.New()
	trackerhttp.SetupRouter(app, t.TempDir(), userService, logService)

	return app, userService, logService
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dst))
}

func TestCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		id := uuid.NewString()
		userService.On("Register", mock.Anything, "alice").
			Return(&entities.User{ID: id, Username: "alice"}, nil).Once()

		resp, err := app.Test(formRequest(http.MethodPost, "/api/users", url.Values{"username": {"alice"}}))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, id, body["_id"])
		assert.Equal(t, "alice", body["username"])
		userService.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		userService.On("Register", mock.Anything, "alice").
			Return(nil, entities.ErrDuplicateUsername).Once()

		resp, err := app.Test(formRequest(http.MethodPost, "/api/users", url.Values{"username": {"alice"}}))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "there is already a user with that username", body["error"])
	})

	t.Run("username too short", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		userService.On("Register", mock.Anything, "ab").
			Return(nil, entities.ErrUsernameTooShort).Once()

		resp, err := app.Test(formRequest(http.MethodPost, "/api/users", url.Values{"username": {"ab"}}))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestListUsers(t *testing.T) {
	app, userService, _ := newTestApp(t)

	stored := []*entities.User{
		{ID: uuid.NewString(), Username: "alice"},
		{ID: uuid.NewString(), Username: "bob"},
	}
	userService.On("List", mock.Anything).Return(stored, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]string
	decodeBody(t, resp, &body)
	require.Len(t, body, 2)
	assert.Equal(t, stored[0].ID, body[0]["_id"])
	assert.Equal(t, "alice", body[0]["username"])
	assert.Equal(t, "bob", body[1]["username"])
}

func TestAddExercise(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		id := uuid.NewString()
		date := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
		updated := &entities.User{
			ID:       id,
			Username: "alice",
			Exercises: []entities.Exercise{
				{Description: "run", Duration: 30, Date: date},
			},
		}
		userService.On("AppendExercise", mock.Anything, id, "run", "30", "2021-06-01").
			Return(updated, nil).Once()

		form := url.Values{"description": {"run"}, "duration": {"30"}, "date": {"2021-06-01"}}
		resp, err := app.Test(formRequest(http.MethodPost, "/api/users/"+id+"/exercises", form))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			ID        string `json:"_id"`
			Username  string `json:"username"`
			Exercises []struct {
				Description string `json:"description"`
				Duration    int    `json:"duration"`
				Date        string `json:"date"`
			} `json:"exercises"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, id, body.ID)
		require.Len(t, body.Exercises, 1)
		assert.Equal(t, "run", body.Exercises[0].Description)
		assert.Equal(t, 30, body.Exercises[0].Duration)
		assert.Equal(t, "Tue Jun 01 2021", body.Exercises[0].Date)
	})

	t.Run("unknown user", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		id := uuid.NewString()
		userService.On("AppendExercise", mock.Anything, id, "run", "30", "").
			Return(nil, entities.ErrUserNotFound).Once()

		form := url.Values{"description": {"run"}, "duration": {"30"}}
		resp, err := app.Test(formRequest(http.MethodPost, "/api/users/"+id+"/exercises", form))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "no user was found", body["error"])
	})

	t.Run("missing description", func(t *testing.T) {
		app, userService, _ := newTestApp(t)

		id := uuid.NewString()
		userService.On("AppendExercise", mock.Anything, id, "", "30", "").
			Return(nil, entities.ErrDescriptionRequired).Once()

		form := url.Values{"duration": {"30"}}
		resp, err := app.Test(formRequest(http.MethodPost, "/api/users/"+id+"/exercises", form))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetLogs(t *testing.T) {
	t.Run("forwards query parameters", func(t *testing.T) {
		app, _, logService := newTestApp(t)

		id := uuid.NewString()
		date := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
		logService.On("GetUserLog", mock.Anything, id, "2021-01-01", "2021-12-31", "5").
			Return(&api.UserLog{
				ID:       id,
				Username: "alice",
				Count:    1,
				Exercises: []entities.Exercise{
					{Description: "swim", Duration: 45, Date: date},
				},
			}, nil).Once()

		target := "/api/users/" + id + "/logs?from=2021-01-01&to=2021-12-31&limit=5"
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			ID        string `json:"_id"`
			Username  string `json:"username"`
			Count     int    `json:"count"`
			Exercises []struct {
				Description string `json:"description"`
				Date        string `json:"date"`
			} `json:"exercises"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, id, body.ID)
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Exercises, 1)
		assert.Equal(t, "Tue Jun 01 2021", body.Exercises[0].Date)
		logService.AssertExpectations(t)
	})

	t.Run("invalid date bound", func(t *testing.T) {
		app, _, logService := newTestApp(t)

		id := uuid.NewString()
		logService.On("GetUserLog", mock.Anything, id, "garbage", "", "").
			Return(nil, entities.ErrInvalidDateFormat).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/"+id+"/logs?from=garbage", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		app, _, logService := newTestApp(t)

		id := uuid.NewString()
		logService.On("GetUserLog", mock.Anything, id, "", "", "").
			Return(nil, entities.ErrUserNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/"+id+"/logs", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestUnknownRoute(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Route not found", body["error"])
}
