package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ClaimStatus is the ownership state of a parcel.
type ClaimStatus string

const (
	// StatusOwned marks a parcel held by an owner and not on the market.
	StatusOwned ClaimStatus = "owned"
	// StatusListed marks an owned parcel offered for resale at ListedPrice.
	StatusListed ClaimStatus = "listed"
	// StatusReserved marks a parcel withheld from sale.
	StatusReserved ClaimStatus = "reserved"
	// StatusAvailable is never stored. It is reported for parcels with no
	// claim row that are open for purchase.
	StatusAvailable ClaimStatus = "available"
)

// Valid reports whether s may be persisted.
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusOwned, StatusListed, StatusReserved:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting statuses the table should never hold.
func (s *ClaimStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("failed to scan ClaimStatus: NULL status")
	default:
		return fmt.Errorf("failed to scan ClaimStatus: expected string, got %T", value)
	}

	status := ClaimStatus(raw)
	if !status.Valid() {
		return fmt.Errorf("failed to scan ClaimStatus: unknown status %q", raw)
	}
	*s = status
	return nil
}

// Value implements driver.Valuer.
func (s ClaimStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot store claim status %q", string(s))
	}
	return string(s), nil
}

// ParcelClaim is a row of parcel_claims.
// ListedPrice is set only while the parcel is listed.
type ParcelClaim struct {
	ClaimedAt   time.Time   `json:"claimed_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ListedPrice *int64      `json:"listed_price,omitempty"`
	Owner       string      `json:"owner"`
	Status      ClaimStatus `json:"status"`
	ParcelID    int         `json:"parcel_id"`
}

// Availability resolves the status reported for a parcel. A parcel with no
// claim is available unless it cannot be sold, in which case it is reserved.
func Availability(claim *ParcelClaim, forSale bool) ClaimStatus {
	if claim != nil {
		return claim.Status
	}
	if !forSale {
		return StatusReserved
	}
	return StatusAvailable
}
