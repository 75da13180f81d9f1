// Package postgres содержит реализации репозиториев поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"fittrack/internal/tracker/domain/entities"
	"fittrack/internal/tracker/ports/repositories"
	"fittrack/pkg/logger"
)

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool,
// чтобы репозиторий можно было тестировать через pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет нового пользователя. Нарушение уникальности имени
// транслируется в entities.ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username)
        VALUES ($1)
        RETURNING id, username, created_at
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Debug(ctx, "duplicate username", zap.String("username", username))
			return nil, entities.ErrDuplicateUsername
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user.Exercises = []entities.Exercise{}
	return &user, nil
}

// FindByID возвращает пользователя вместе с журналом упражнений в
// порядке добавления.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, username, created_at
        FROM users
        WHERE id = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	exercises, err := r.loadExercises(ctx, id)
	if err != nil {
		log.Error(ctx, "error loading exercises", zap.Error(err))
		return nil, err
	}
	user.Exercises = exercises

	return &user, nil
}

// List возвращает всех пользователей без журналов, в порядке создания.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	query := `
        SELECT id, username, created_at
        FROM users
        ORDER BY created_at, id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// AppendExercise вставляет запись журнала одной атомарной операцией и
// возвращает обновленного пользователя. Нарушение внешнего ключа
// означает отсутствие пользователя.
func (r *UserRepository) AppendExercise(ctx context.Context, userID string, exercise entities.Exercise) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "AppendExercise"))

	query := `
        INSERT INTO exercises (user_id, description, duration, date)
        VALUES ($1, $2, $3, $4)
    `

	_, err := r.pool.Exec(ctx, query, userID, exercise.Description, exercise.Duration, exercise.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			log.Debug(ctx, "user not found for append", zap.String("userID", userID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error appending exercise", zap.Error(err))
		return nil, fmt.Errorf("error appending exercise: %w", err)
	}

	return r.FindByID(ctx, userID)
}

// loadExercises читает журнал пользователя в порядке вставки.
func (r *UserRepository) loadExercises(ctx context.Context, userID string) ([]entities.Exercise, error) {
	query := `
        SELECT description, duration, date
        FROM exercises
        WHERE user_id = $1
        ORDER BY id
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]entities.Exercise, 0)
	for rows.Next() {
		var e entities.Exercise
		if err := rows.Scan(&e.Description, &e.Duration, &e.Date); err != nil {
			return nil, fmt.Errorf("error scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exercises: %w", err)
	}

	return exercises, nil
}
