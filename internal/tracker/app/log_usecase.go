package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fittrack/internal/tracker/domain/entities"
	"fittrack/internal/tracker/ports/api"
	"fittrack/internal/tracker/ports/cache"
	"fittrack/internal/tracker/ports/repositories"
	"fittrack/pkg/logger"
)

const (
	methodGetUserLog = "GetUserLog"

	msgRequestingLog  = "requesting user log"
	msgLogServedCache = "user log served from cache"
	msgLogRetrieved   = "user log retrieved"
	msgInvalidFilter  = "invalid log filter parameters"
	msgErrFindingUser = "failed to find user"
	msgErrCachingLog  = "failed to cache user log"
	msgErrDecodingLog = "failed to decode cached log"

	errCtxBuildingFilter = "building log filter"
	errCtxFetchingLog    = "fetching user log"
)

// userLogCacheKey формирует ключ кэша полного журнала пользователя.
func userLogCacheKey(userID string) string {
	return "userlog:" + userID
}

// LogUseCaseImpl реализует интерфейс api.LogUseCase.
type LogUseCaseImpl struct {
	userRepo repositories.UserRepository
	logCache cache.Cache
}

// NewLogUseCase создает новый вариант использования журнала.
func NewLogUseCase(userRepo repositories.UserRepository, logCache cache.Cache) api.LogUseCase {
	return &LogUseCaseImpl{
		userRepo: userRepo,
		logCache: logCache,
	}
}

// GetUserLog возвращает журнал пользователя. Без параметров фильтрации
// отдается полный журнал, Count равен общему числу записей, а ответ
// кэшируется до следующего добавления. С параметрами записи
// фильтруются по включительному диапазону дат, усекаются до limit, и
// Count равен числу возвращенных записей.
func (u *LogUseCaseImpl) GetUserLog(ctx context.Context, userID, from, to, limit string) (*api.UserLog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserLog), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingLog)

	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingLog, entities.ErrUserNotFound)
	}

	filter, err := entities.NewLogFilter(from, to, limit)
	if err != nil {
		log.Debug(ctx, msgInvalidFilter, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBuildingFilter, err)
	}

	if filter.Unfiltered() {
		if cached := u.cachedLog(ctx, userID); cached != nil {
			log.Debug(ctx, msgLogServedCache)
			return cached, nil
		}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingLog, err)
	}

	result := &api.UserLog{
		ID:       user.ID,
		Username: user.Username,
	}

	if filter.Unfiltered() {
		result.Exercises = user.Exercises
		result.Count = len(user.Exercises)
		u.storeLog(ctx, userID, result)
	} else {
		result.Exercises = filter.Apply(user.Exercises)
		result.Count = len(result.Exercises)
	}

	log.Info(ctx, msgLogRetrieved, zap.Int("count", result.Count))
	return result, nil
}

// cachedLog возвращает кэшированный полный журнал либо nil.
func (u *LogUseCaseImpl) cachedLog(ctx context.Context, userID string) *api.UserLog {
	log := logger.Log(ctx)

	raw, err := u.logCache.Get(ctx, userLogCacheKey(userID))
	if err != nil || raw == "" {
		return nil
	}

	var cached api.UserLog
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warn(ctx, msgErrDecodingLog, zap.Error(err))
		return nil
	}
	return &cached
}

// storeLog кэширует полный журнал пользователя с TTL по умолчанию.
func (u *LogUseCaseImpl) storeLog(ctx context.Context, userID string, userLog *api.UserLog) {
	log := logger.Log(ctx)

	raw, err := json.Marshal(userLog)
	if err != nil {
		log.Warn(ctx, msgErrCachingLog, zap.Error(err))
		return
	}
	if err := u.logCache.Set(ctx, userLogCacheKey(userID), string(raw), 0); err != nil {
		log.Warn(ctx, msgErrCachingLog, zap.Error(err))
	}
}
