package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-model-indexer/internal/metadata"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// ModelResponse is a model record with its cached metadata
type ModelResponse struct {
	ChainID        string            `json:"chain_id"`
	ModelID        uint64            `json:"model_id"`
	Owner          string            `json:"owner"`
	Creator        string            `json:"creator"`
	Listed         bool              `json:"listed"`
	URI            string            `json:"uri"`
	Version        uint64            `json:"version"`
	Prices         PricesResponse    `json:"prices"`
	RoyaltyBps     uint16            `json:"royalty_bps"`
	DeliveryRights uint8             `json:"delivery_rights"`
	DeliveryMode   uint8             `json:"delivery_mode"`
	TermsHash      string            `json:"terms_hash"`
	AgentID        *uint64           `json:"agent_id"`
	UpdatedBlock   uint64            `json:"updated_block"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Metadata       *MetadataResponse `json:"metadata"`
	// MetadataStale is set when the last refresh failed and an older document is served
	MetadataStale bool `json:"metadata_stale"`
}

// PricesResponse holds the model prices as decimal strings
type PricesResponse struct {
	Perpetual    string `json:"perpetual"`
	Subscription string `json:"subscription"`
	Inference    string `json:"inference"`
}

// MetadataResponse is a cached metadata document
type MetadataResponse struct {
	Document    json.RawMessage `json:"document"`
	ContentHash string          `json:"content_hash"`
	Tags        []string        `json:"tags"`
	Categories  []string        `json:"categories"`
	ImageRef    *string         `json:"image_ref"`
	CachedAt    time.Time       `json:"cached_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	LastError   *string         `json:"last_error,omitempty"`
}

// MapModelToDTO maps a model record and an optional cache entry to a response
func MapModelToDTO(model *schema.Model, entry *metadata.CacheEntry) *ModelResponse {
	resp := &ModelResponse{
		ChainID: model.ChainID,
		ModelID: model.ModelID,
		Owner:   model.Owner,
		Creator: model.Creator,
		Listed:  model.Listed,
		URI:     model.URI,
		Version: model.Version,
		Prices: PricesResponse{
			Perpetual:    model.PricePerpetual,
			Subscription: model.PriceSubscription,
			Inference:    model.PriceInference,
		},
		RoyaltyBps:     model.RoyaltyBps,
		DeliveryRights: model.DeliveryRights,
		DeliveryMode:   model.DeliveryMode,
		TermsHash:      model.TermsHash,
		AgentID:        model.AgentID,
		UpdatedBlock:   model.UpdatedBlock,
		UpdatedAt:      model.UpdatedAt,
	}

	if entry != nil {
		resp.Metadata = &MetadataResponse{
			Document:    entry.Metadata,
			ContentHash: entry.ContentHash,
			Tags:        entry.Tags,
			Categories:  entry.Categories,
			ImageRef:    entry.ImageRef,
			CachedAt:    entry.CachedAt,
			ExpiresAt:   entry.ExpiresAt,
			LastError:   entry.LastError,
		}
		resp.MetadataStale = entry.Stale
	}

	return resp
}
