package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/auth"
)

// Default admin credentials, created only when no account exists yet
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "changeme123"
)

// CreateDefaultData makes sure a fresh database has enough content to serve
// the site: an admin account, the lab info row and a professor profile, plus
// a sample student and project so the homepage isn't empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)
	var finalErr error

	if err := seedAdminUser(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedLabInfo(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedProfessor(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedSampleContent(ctx, repos, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdminUser(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	count, err := repos.AdminUserRepository.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	if _, err := repos.AdminUserRepository.Create(ctx, &models.AdminUser{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Name:         "Administrator",
	}); err != nil {
		return err
	}

	lgr.Warn().
		Str("username", defaultAdminUsername).
		Str("password", defaultAdminPassword).
		Msg("Created default admin account - change the password immediately")
	return nil
}

func seedLabInfo(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	_, err := repos.LabInfoRepository.First(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if _, err := repos.LabInfoRepository.Create(ctx, &models.LabInfo{
		LabName:       "DADL",
		LabFullName:   "Data Analytics and Deep Learning Lab",
		Mission:       "Advancing data analytics and deep learning research",
		ResearchAreas: "Data Analytics, Deep Learning, Machine Learning",
		LabEmail:      "contact@dadl-lab.org",
	}); err != nil {
		return err
	}

	lgr.Info().Msg("Created default lab info")
	return nil
}

func seedProfessor(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	_, err := repos.ProfessorRepository.First(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if _, err := repos.ProfessorRepository.Create(ctx, &models.Professor{
		Name:  "Dr. John Smith",
		Title: "Professor and Lab Director",
		Bio:   "Leads the lab's research on data analytics and deep learning.",
		Email: "john.smith@dadl-lab.org",
	}); err != nil {
		return err
	}

	lgr.Info().Msg("Created default professor profile")
	return nil
}

// seedSampleContent adds one student and one project so a fresh install has
// something to show. Only runs against completely empty tables.
func seedSampleContent(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	studentCount, err := repos.StudentRepository.Count(ctx)
	if err != nil {
		return err
	}
	projectCount, err := repos.ProjectRepository.Count(ctx)
	if err != nil {
		return err
	}
	if studentCount > 0 || projectCount > 0 {
		return nil
	}

	studentID, err := repos.StudentRepository.Create(ctx, &models.Student{
		Name:          "Jane Doe",
		DegreeType:    models.DegreePhD,
		ResearchFocus: "Deep learning for time series",
		School:        "School of Computing",
		StartDate:     "2023",
		IsCurrent:     true,
	})
	if err != nil {
		return err
	}

	if _, err := repos.ProjectRepository.Create(ctx, &models.Project{
		Title:     "Sample Research Project",
		Topic:     "Deep Learning",
		Overview:  "A placeholder project demonstrating the project pages.",
		Status:    models.ProjectOngoing,
		StartDate: "2023",
	}, []int64{studentID}); err != nil {
		return err
	}

	lgr.Info().Msg("Created sample student and project")
	return nil
}
