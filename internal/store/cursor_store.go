package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-model-indexer/internal/domain"
	"github.com/feral-file/ff-model-indexer/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving stream cursors
type CursorStore interface {
	// GetCursor retrieves the cursor of a stream, nil when the stream was never advanced
	GetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream) (*schema.ChainCursor, error)
	// SetCursor moves the cursor forward, it never moves backwards
	SetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, lastBlock uint64) error
	// ResetCursor sets the cursor to any block, including lower ones
	ResetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, lastBlock uint64) error
	// ListCursors returns every cursor
	ListCursors(ctx context.Context) ([]schema.ChainCursor, error)
}

// GetCursor retrieves the cursor of a stream
func (s *pgStore) GetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream) (*schema.ChainCursor, error) {
	var cursor schema.ChainCursor
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND stream_name = ?", string(chain), string(stream)).
		First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}

	return &cursor, nil
}

// SetCursor stores the last processed block of a stream.
// The conflict update is guarded so a lower block never overwrites a higher one.
func (s *pgStore) SetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, lastBlock uint64) error {
	cursor := schema.ChainCursor{
		ChainID:    string(chain),
		StreamName: string(stream),
		LastBlock:  lastBlock,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "stream_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_block", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "chain_cursors.last_block < ?", Vars: []any{lastBlock}},
		}},
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to set cursor: %w", err)
	}

	return nil
}

// ResetCursor overwrites the cursor unconditionally
func (s *pgStore) ResetCursor(ctx context.Context, chain domain.Chain, stream domain.Stream, lastBlock uint64) error {
	cursor := schema.ChainCursor{
		ChainID:    string(chain),
		StreamName: string(stream),
		LastBlock:  lastBlock,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "stream_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_block", "updated_at"}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to reset cursor: %w", err)
	}

	return nil
}

// ListCursors returns every cursor ordered by chain and stream
func (s *pgStore) ListCursors(ctx context.Context) ([]schema.ChainCursor, error) {
	var cursors []schema.ChainCursor
	err := s.db.WithContext(ctx).
		Order("chain_id ASC, stream_name ASC").
		Find(&cursors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cursors: %w", err)
	}

	return cursors, nil
}
