// Package users содержит HTTP-обработчики для пользователей и их
// журналов упражнений.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"fittrack/internal/tracker/adapters/http/middleware"
	"fittrack/internal/tracker/domain/entities"
	"fittrack/internal/tracker/ports/api"
	"fittrack/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerCreateUser  = "handling create user request"
	LogHandlerListUsers   = "handling list users request"
	LogHandlerAddExercise = "handling add exercise request"
	LogHandlerGetLogs     = "handling get user logs request"

	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов трекера.
type Handler struct {
	userService api.UserUseCase
	logService  api.LogUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(userService api.UserUseCase, logService api.LogUseCase) *Handler {
	return &Handler{
		userService: userService,
		logService:  logService,
	}
}

type createUserRequest struct {
	Username string `form:"username" json:"username"`
}

type addExerciseRequest struct {
	Description string `form:"description" json:"description"`
	Duration    string `form:"duration" json:"duration"`
	Date        string `form:"date" json:"date"`
}

type userResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type exerciseResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type userWithLogResponse struct {
	ID        string             `json:"_id"`
	Username  string             `json:"username"`
	Exercises []exerciseResponse `json:"exercises"`
}

type userLogResponse struct {
	ID        string             `json:"_id"`
	Username  string             `json:"username"`
	Count     int                `json:"count"`
	Exercises []exerciseResponse `json:"exercises"`
}

// CreateUser обрабатывает регистрацию пользователя по имени.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(reqCtx, LogHandlerCreateUser)

	var req createUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	user, err := h.userService.Register(reqCtx, req.Username)
	if err != nil {
		log.Error(reqCtx, "failed to register user", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(userResponse{
		ID:       user.ID,
		Username: user.Username,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListUsers обрабатывает запрос списка пользователей без журналов.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(reqCtx, LogHandlerListUsers)

	usersList, err := h.userService.List(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list users", zap.Error(err))
		return handleError(ctx, err)
	}

	resp := make([]userResponse, 0, len(usersList))
	for _, user := range usersList {
		resp = append(resp, userResponse{ID: user.ID, Username: user.Username})
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// AddExercise обрабатывает добавление записи в журнал пользователя.
func (h *Handler) AddExercise(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.AddExercise"))
	log.Debug(reqCtx, LogHandlerAddExercise)

	userID := ctx.Params("id")
	if userID == "" {
		log.Error(reqCtx, ErrMsgInvalidUserID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidUserID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	var req addExerciseRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	user, err := h.userService.AppendExercise(reqCtx, userID, req.Description, req.Duration, req.Date)
	if err != nil {
		log.Error(reqCtx, "failed to append exercise", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(userWithLogResponse{
		ID:        user.ID,
		Username:  user.Username,
		Exercises: toExerciseResponses(user.Exercises),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetLogs обрабатывает чтение журнала с фильтрацией по датам.
func (h *Handler) GetLogs(ctx fiber.Ctx) error {
	reqCtx := requestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetLogs"))
	log.Debug(reqCtx, LogHandlerGetLogs)

	userID := ctx.Params("id")
	if userID == "" {
		log.Error(reqCtx, ErrMsgInvalidUserID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidUserID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	userLog, err := h.logService.GetUserLog(reqCtx, userID,
		ctx.Query("from"), ctx.Query("to"), ctx.Query("limit"))
	if err != nil {
		log.Error(reqCtx, "failed to get user log", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(userLogResponse{
		ID:        userLog.ID,
		Username:  userLog.Username,
		Count:     userLog.Count,
		Exercises: toExerciseResponses(userLog.Exercises),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// toExerciseResponses переводит записи журнала в вид ответа с датой
// без времени суток.
func toExerciseResponses(exercises []entities.Exercise) []exerciseResponse {
	resp := make([]exerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		resp = append(resp, exerciseResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.DisplayDate(),
		})
	}
	return resp
}

// requestContext извлекает контекст запроса, подготовленный middleware.
func requestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}

// handleError переводит доменные ошибки в HTTP-статус и тело ответа.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		status = fiber.StatusNotFound
		message = entities.ErrUserNotFound.Error()
	case errors.Is(err, entities.ErrDuplicateUsername):
		status = fiber.StatusConflict
		message = entities.ErrDuplicateUsername.Error()
	case errors.Is(err, entities.ErrUsernameRequired):
		status = fiber.StatusBadRequest
		message = entities.ErrUsernameRequired.Error()
	case errors.Is(err, entities.ErrUsernameTooShort):
		status = fiber.StatusBadRequest
		message = entities.ErrUsernameTooShort.Error()
	case errors.Is(err, entities.ErrDescriptionRequired):
		status = fiber.StatusBadRequest
		message = entities.ErrDescriptionRequired.Error()
	case errors.Is(err, entities.ErrDurationRequired):
		status = fiber.StatusBadRequest
		message = entities.ErrDurationRequired.Error()
	case errors.Is(err, entities.ErrInvalidDuration):
		status = fiber.StatusBadRequest
		message = entities.ErrInvalidDuration.Error()
	case errors.Is(err, entities.ErrInvalidDateFormat):
		status = fiber.StatusBadRequest
		message = entities.ErrInvalidDateFormat.Error()
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}
