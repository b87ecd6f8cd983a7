package domain

import "time"

// EntitlementSource tells where an entitlement was resolved from
type EntitlementSource string

const (
	EntitlementSourceStore  EntitlementSource = "store"
	EntitlementSourceLedger EntitlementSource = "ledger"
)

// Rights are the validity flags derived from a license rights bitmask
type Rights struct {
	API      bool `json:"api"`
	Download bool `json:"download"`
}

// RightsFromMask converts a rights bitmask into flags
func RightsFromMask(mask uint8) Rights {
	return Rights{
		API:      mask&RIGHT_API != 0,
		Download: mask&RIGHT_DOWNLOAD != 0,
	}
}

// Entitlement describes the rights a user currently holds on a model.
// A nil LicenseID means no license was found within the scan bound.
type Entitlement struct {
	Chain       Chain             `json:"chain_id"`
	ModelID     uint64            `json:"model_id"`
	User        string            `json:"user"`
	LicenseID   *uint64           `json:"license_id"`
	Rights      Rights            `json:"rights"`
	RightsMask  uint8             `json:"rights_mask"`
	Kind        *LicenseKind      `json:"kind"`
	ExpiresAt   *time.Time        `json:"expires_at"`
	Revoked     bool              `json:"revoked"`
	Version     uint64            `json:"version"`
	Source      EntitlementSource `json:"source"`
	Scanned     int               `json:"scanned"`
	ContentHash string            `json:"content_hash,omitempty"`
}

// HasLicense reports whether a matching license was found
func (e *Entitlement) HasLicense() bool {
	return e.LicenseID != nil
}

// EntitlementFacts is the part of an entitlement its content hash covers.
// Where the answer came from and how many licenses were read do not change it.
type EntitlementFacts struct {
	Chain      Chain        `json:"chain_id"`
	ModelID    uint64       `json:"model_id"`
	User       string       `json:"user"`
	LicenseID  *uint64      `json:"license_id"`
	Rights     Rights       `json:"rights"`
	RightsMask uint8        `json:"rights_mask"`
	Kind       *LicenseKind `json:"kind"`
	ExpiresAt  *time.Time   `json:"expires_at"`
	Revoked    bool         `json:"revoked"`
	Version    uint64       `json:"version"`
}

// Facts returns the hashed view of the entitlement
func (e *Entitlement) Facts() EntitlementFacts {
	return EntitlementFacts{
		Chain:      e.Chain,
		ModelID:    e.ModelID,
		User:       e.User,
		LicenseID:  e.LicenseID,
		Rights:     e.Rights,
		RightsMask: e.RightsMask,
		Kind:       e.Kind,
		ExpiresAt:  e.ExpiresAt,
		Revoked:    e.Revoked,
		Version:    e.Version,
	}
}
