package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// ErrLabInfoNotFound is returned when the lab info record is not found.
var ErrLabInfoNotFound = ErrNotFound

var labInfoColumns = []string{
	"id", "lab_name", "lab_full_name", "mission", "research_areas",
	"lab_email", "lab_address", "lab_phone",
}

// LabInfoRepository handles lab info database operations. The admin backend
// treats the table as a singleton; this layer does not enforce it.
type LabInfoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLabInfoRepository creates a new LabInfoRepository
func NewLabInfoRepository(db *pgxpool.Pool) *LabInfoRepository {
	return &LabInfoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLabInfo(row pgx.Row) (*models.LabInfo, error) {
	info := &models.LabInfo{}
	err := row.Scan(
		&info.ID, &info.LabName, &info.LabFullName, &info.Mission, &info.ResearchAreas,
		&info.LabEmail, &info.LabAddress, &info.LabPhone,
	)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Create inserts a new lab info record. Only the seeder calls this.
func (r *LabInfoRepository) Create(ctx context.Context, info *models.LabInfo) (int64, error) {
	sql, args, err := r.sb.Insert("lab_info").
		Columns("lab_name", "lab_full_name", "mission", "research_areas",
			"lab_email", "lab_address", "lab_phone").
		Values(info.LabName, info.LabFullName, info.Mission, info.ResearchAreas,
			info.LabEmail, info.LabAddress, info.LabPhone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create lab info query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create lab info query")
		return 0, fmt.Errorf("error creating lab info: %w", err)
	}

	return id, nil
}

// GetByID retrieves a lab info record by ID
func (r *LabInfoRepository) GetByID(ctx context.Context, id int64) (*models.LabInfo, error) {
	sql, args, err := r.sb.Select(labInfoColumns...).
		From("lab_info").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lab info query: %w", err)
	}

	info, err := scanLabInfo(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabInfoNotFound
		}
		logger.Error().Err(err).Int64("labInfoID", id).Msg("Error scanning lab info row")
		return nil, fmt.Errorf("error getting lab info by ID: %w", err)
	}

	return info, nil
}

// First retrieves the first lab info record, or ErrLabInfoNotFound when none exists
func (r *LabInfoRepository) First(ctx context.Context) (*models.LabInfo, error) {
	sql, args, err := r.sb.Select(labInfoColumns...).
		From("lab_info").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build first lab info query: %w", err)
	}

	info, err := scanLabInfo(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLabInfoNotFound
		}
		logger.Error().Err(err).Msg("Error scanning lab info row")
		return nil, fmt.Errorf("error getting first lab info: %w", err)
	}

	return info, nil
}

// GetAll retrieves all lab info records
func (r *LabInfoRepository) GetAll(ctx context.Context) ([]*models.LabInfo, error) {
	sql, args, err := r.sb.Select(labInfoColumns...).
		From("lab_info").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all lab info query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all lab info query")
		return nil, fmt.Errorf("error querying lab info: %w", err)
	}
	defer rows.Close()

	infos := []*models.LabInfo{}
	for rows.Next() {
		info, err := scanLabInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lab info row: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab info rows: %w", err)
	}

	return infos, nil
}

// Update updates an existing lab info record
func (r *LabInfoRepository) Update(ctx context.Context, info *models.LabInfo) error {
	sql, args, err := r.sb.Update("lab_info").
		SetMap(map[string]interface{}{
			"lab_name":       info.LabName,
			"lab_full_name":  info.LabFullName,
			"mission":        info.Mission,
			"research_areas": info.ResearchAreas,
			"lab_email":      info.LabEmail,
			"lab_address":    info.LabAddress,
			"lab_phone":      info.LabPhone,
		}).
		Where(squirrel.Eq{"id": info.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update lab info query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("labInfoID", info.ID).Msg("Error executing update lab info query")
		return fmt.Errorf("error updating lab info: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrLabInfoNotFound
	}

	return nil
}
