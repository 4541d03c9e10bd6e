package repositories

import (
	"context"
	"errors"

	"panditconnect/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppFileRepository interface {
	Create(ctx context.Context, file *models.AppFile) error
	GetLatestByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.AppFile, error)
}

type appFileRepo struct {
	db Database
}

func NewAppFileRepo(db Database) AppFileRepository {
	return &appFileRepo{db: db}
}

func (r *appFileRepo) Create(ctx context.Context, file *models.AppFile) error {
	query := `
		INSERT INTO app_files (id, business_id, file_name, file_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	file.ID = uuid.New()
	_, err := r.db.Exec(ctx, query, file.ID, file.BusinessID, file.FileName, file.FileType, file.FileSize)
	return err
}

// GetLatestByBusinessID returns the newest metadata row for the business, or
// nil when no upload exists yet.
func (r *appFileRepo) GetLatestByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.AppFile, error) {
	query := `
		SELECT id, business_id, file_name, file_type, file_size, created_at
		FROM app_files
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	file := &models.AppFile{}
	err := r.db.QueryRow(ctx, query, businessID).Scan(
		&file.ID,
		&file.BusinessID,
		&file.FileName,
		&file.FileType,
		&file.FileSize,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}
