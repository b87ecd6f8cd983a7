package dto

import (
	"time"

	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// HealthResponse is the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// TriggerReindexResponse identifies the started reindex workflow
type TriggerReindexResponse struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// CursorResponse is the progress of a stream
type CursorResponse struct {
	ChainID   string    `json:"chain_id"`
	Stream    string    `json:"stream"`
	LastBlock uint64    `json:"last_block"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CursorListResponse lists every stream cursor
type CursorListResponse struct {
	Cursors []CursorResponse `json:"cursors"`
}

// MapCursorToDTO maps a cursor row to a response
func MapCursorToDTO(cursor *schema.ChainCursor) CursorResponse {
	return CursorResponse{
		ChainID:   cursor.ChainID,
		Stream:    cursor.StreamName,
		LastBlock: cursor.LastBlock,
		UpdatedAt: cursor.UpdatedAt,
	}
}
