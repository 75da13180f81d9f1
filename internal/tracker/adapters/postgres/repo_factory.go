package postgres

import (
	"fittrack/internal/tracker/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool     PgxPoolInterface
	userRepo repositories.UserRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// UserRepository возвращает репозиторий пользователей.
// Повторные вызовы возвращают тот же экземпляр.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	if f.userRepo == nil {
		f.userRepo = NewUserRepository(f.pool)
	}
	return f.userRepo
}
