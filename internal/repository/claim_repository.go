package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/landgrid/internal/database"
	"github.com/stwalsh4118/landgrid/internal/models"
)

// ParcelClaimRepository defines data access for parcel ownership claims.
type ParcelClaimRepository interface {
	// FindByParcelID returns the claim on a parcel.
	// Returns nil, nil if the parcel is unclaimed (not an error).
	FindByParcelID(ctx context.Context, parcelID int) (*models.ParcelClaim, error)

	// FindByParcelIDs returns the claims for any of the given parcels, ordered
	// by parcel ID. Unclaimed parcels are simply absent from the result.
	FindByParcelIDs(ctx context.Context, parcelIDs []int) ([]models.ParcelClaim, error)

	// Upsert inserts or replaces the claim on claim.ParcelID.
	Upsert(ctx context.Context, claim *models.ParcelClaim) error
}

type parcelClaimRepository struct {
	db *database.Database
}

// NewParcelClaimRepository creates a ParcelClaimRepository backed by db.
func NewParcelClaimRepository(db *database.Database) ParcelClaimRepository {
	return &parcelClaimRepository{db: db}
}

const claimColumns = `parcel_id, owner, status, listed_price, claimed_at, updated_at`

func scanClaim(row pgx.Row) (models.ParcelClaim, error) {
	var claim models.ParcelClaim
	err := row.Scan(
		&claim.ParcelID,
		&claim.Owner,
		&claim.Status,
		&claim.ListedPrice,
		&claim.ClaimedAt,
		&claim.UpdatedAt,
	)
	return claim, err
}

func (r *parcelClaimRepository) FindByParcelID(ctx context.Context, parcelID int) (*models.ParcelClaim, error) {
	query := `SELECT ` + claimColumns + ` FROM parcel_claims WHERE parcel_id = $1`

	claim, err := scanClaim(r.db.Pool.QueryRow(ctx, query, parcelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query claim for parcel %d: %w", parcelID, err)
	}

	return &claim, nil
}

func (r *parcelClaimRepository) FindByParcelIDs(ctx context.Context, parcelIDs []int) ([]models.ParcelClaim, error) {
	if len(parcelIDs) == 0 {
		return []models.ParcelClaim{}, nil
	}

	query := `SELECT ` + claimColumns + ` FROM parcel_claims WHERE parcel_id = ANY($1) ORDER BY parcel_id`

	rows, err := r.db.Pool.Query(ctx, query, parcelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims for %d parcels: %w", len(parcelIDs), err)
	}
	defer rows.Close()

	claims := make([]models.ParcelClaim, 0, len(parcelIDs))
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel claim: %w", err)
		}
		claims = append(claims, claim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parcel claims: %w", err)
	}

	return claims, nil
}

func (r *parcelClaimRepository) Upsert(ctx context.Context, claim *models.ParcelClaim) error {
	if !claim.Status.Valid() {
		return fmt.Errorf("cannot store claim on parcel %d with status %q", claim.ParcelID, claim.Status)
	}

	query := `
		INSERT INTO parcel_claims (parcel_id, owner, status, listed_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (parcel_id) DO UPDATE SET
			owner = EXCLUDED.owner,
			status = EXCLUDED.status,
			listed_price = EXCLUDED.listed_price,
			updated_at = now()
		RETURNING claimed_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		claim.ParcelID, claim.Owner, string(claim.Status), claim.ListedPrice,
	).Scan(&claim.ClaimedAt, &claim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert claim for parcel %d: %w", claim.ParcelID, err)
	}

	return nil
}
