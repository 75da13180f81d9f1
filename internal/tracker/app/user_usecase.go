// Package app содержит варианты использования трекера упражнений.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fittrack/internal/tracker/domain/entities"
	"fittrack/internal/tracker/ports/api"
	"fittrack/internal/tracker/ports/cache"
	"fittrack/internal/tracker/ports/repositories"
	"fittrack/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodList           = "List"
	methodAppendExercise = "AppendExercise"

	msgRegisteringUser     = "registering new user"
	msgUserRegistered      = "user successfully registered"
	msgListingUsers        = "listing users"
	msgAppendingExercise   = "appending exercise to user log"
	msgExerciseAppended    = "exercise appended"
	msgInvalidUsername     = "invalid username"
	msgInvalidUserID       = "invalid user id"
	msgInvalidExerciseForm = "invalid exercise fields"

	msgErrCreatingUser    = "failed to create user"
	msgErrListingUsers    = "failed to list users"
	msgErrAppendingEntry  = "failed to append exercise"
	msgErrInvalidatingLog = "failed to invalidate cached log"

	errCtxValidatingUsername = "validating username"
	errCtxCreatingUser       = "creating user"
	errCtxListingUsers       = "listing users"
	errCtxValidatingExercise = "validating exercise"
	errCtxAppendingExercise  = "appending exercise"
)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	logCache cache.Cache
}

// NewUserUseCase создает новый вариант использования пользователей.
func NewUserUseCase(userRepo repositories.UserRepository, logCache cache.Cache) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		logCache: logCache,
	}
}

// Register валидирует имя и создает пользователя с пустым журналом.
func (u *UserUseCaseImpl) Register(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))
	log.Debug(ctx, msgRegisteringUser)

	name, err := entities.ValidateUsername(username)
	if err != nil {
		log.Debug(ctx, msgInvalidUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, err)
	}

	user, err := u.userRepo.Create(ctx, name)
	if err != nil {
		log.Error(ctx, msgErrCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return user, nil
}

// List возвращает всех пользователей без журналов упражнений.
func (u *UserUseCaseImpl) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList))
	log.Debug(ctx, msgListingUsers)

	users, err := u.userRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, nil
}

// AppendExercise разбирает поля формы и добавляет запись в конец
// журнала. Пустая дата заменяется текущим моментом. Кэшированный
// журнал пользователя инвалидируется.
func (u *UserUseCaseImpl) AppendExercise(ctx context.Context, userID, description, duration, date string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAppendExercise), zap.String("userID", userID))
	log.Debug(ctx, msgAppendingExercise)

	if _, err := uuid.Parse(userID); err != nil {
		log.Debug(ctx, msgInvalidUserID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAppendingExercise, entities.ErrUserNotFound)
	}

	exercise, err := parseExercise(description, duration, date)
	if err != nil {
		log.Debug(ctx, msgInvalidExerciseForm, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingExercise, err)
	}

	user, err := u.userRepo.AppendExercise(ctx, userID, exercise)
	if err != nil {
		log.Error(ctx, msgErrAppendingEntry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxAppendingExercise, err)
	}

	if err := u.logCache.Delete(ctx, userLogCacheKey(userID)); err != nil {
		// Кэш не является источником истины, запись уже сохранена.
		log.Warn(ctx, msgErrInvalidatingLog, zap.Error(err))
	}

	log.Info(ctx, msgExerciseAppended, zap.Int("total", len(user.Exercises)))
	return user, nil
}

// parseExercise валидирует поля формы и собирает запись журнала.
func parseExercise(description, duration, date string) (entities.Exercise, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return entities.Exercise{}, entities.ErrDescriptionRequired
	}

	if strings.TrimSpace(duration) == "" {
		return entities.Exercise{}, entities.ErrDurationRequired
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil || minutes <= 0 {
		return entities.Exercise{}, entities.ErrInvalidDuration
	}

	when := time.Now()
	if strings.TrimSpace(date) != "" {
		when, err = entities.ParseDate(strings.TrimSpace(date))
		if err != nil {
			return entities.Exercise{}, err
		}
	}

	return entities.Exercise{
		Description: description,
		Duration:    minutes,
		Date:        when,
	}, nil
}
