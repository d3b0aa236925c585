package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found error returned by all repositories.
var ErrNotFound = errors.New("resource not found")

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}

// Repositories holds all the repository instances
type Repositories struct {
	AdminUserRepository   *AdminUserRepository
	ProfessorRepository   *ProfessorRepository
	StudentRepository     *StudentRepository
	ProjectRepository     *ProjectRepository
	PublicationRepository *PublicationRepository
	LabInfoRepository     *LabInfoRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminUserRepository:   NewAdminUserRepository(db),
		ProfessorRepository:   NewProfessorRepository(db),
		StudentRepository:     NewStudentRepository(db),
		ProjectRepository:     NewProjectRepository(db),
		PublicationRepository: NewPublicationRepository(db),
		LabInfoRepository:     NewLabInfoRepository(db),
	}
}
