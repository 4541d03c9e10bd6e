package repositories

import (
	"context"
	"errors"

	"panditconnect/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type BusinessProfileRepository interface {
	GetLatest(ctx context.Context) (*models.BusinessProfile, error)
	Insert(ctx context.Context, profile *models.BusinessProfile) error
	Update(ctx context.Context, profile *models.BusinessProfile) error
}

type businessProfileRepo struct {
	db Database
}

func NewBusinessProfileRepo(db Database) BusinessProfileRepository {
	return &businessProfileRepo{db: db}
}

// GetLatest returns the most recently updated profile row, or nil when the
// table is empty. Absence is not an error.
func (r *businessProfileRepo) GetLatest(ctx context.Context) (*models.BusinessProfile, error) {
	query := `
		SELECT id, business_name, description, app_url, app_name, website_url,
		       instagram_url, facebook_url, phone, email, total_pandits,
		       happy_customers, updated_at
		FROM business_profiles
		ORDER BY updated_at DESC
		LIMIT 1
	`
	profile := &models.BusinessProfile{}
	err := r.db.QueryRow(ctx, query).Scan(
		&profile.ID,
		&profile.BusinessName,
		&profile.Description,
		&profile.AppURL,
		&profile.AppName,
		&profile.WebsiteURL,
		&profile.InstagramURL,
		&profile.FacebookURL,
		&profile.Phone,
		&profile.Email,
		&profile.TotalPandits,
		&profile.HappyCustomers,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (r *businessProfileRepo) Insert(ctx context.Context, profile *models.BusinessProfile) error {
	query := `
		INSERT INTO business_profiles (id, business_name, description, app_url, app_name, website_url, instagram_url, facebook_url, phone, email, total_pandits, happy_customers, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`
	profile.ID = uuid.New()
	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.BusinessName,
		profile.Description,
		profile.AppURL,
		profile.AppName,
		profile.WebsiteURL,
		profile.InstagramURL,
		profile.FacebookURL,
		profile.Phone,
		profile.Email,
		profile.TotalPandits,
		profile.HappyCustomers,
	)
	return err
}

func (r *businessProfileRepo) Update(ctx context.Context, profile *models.BusinessProfile) error {
	query := `
		UPDATE business_profiles
		SET business_name = $2, description = $3, app_url = $4, app_name = $5,
		    website_url = $6, instagram_url = $7, facebook_url = $8, phone = $9,
		    email = $10, total_pandits = $11, happy_customers = $12, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.BusinessName,
		profile.Description,
		profile.AppURL,
		profile.AppName,
		profile.WebsiteURL,
		profile.InstagramURL,
		profile.FacebookURL,
		profile.Phone,
		profile.Email,
		profile.TotalPandits,
		profile.HappyCustomers,
	)
	return err
}
