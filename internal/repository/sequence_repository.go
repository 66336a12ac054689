package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ferromax/backoffice-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository handles database operations for number sequences.
// Sequences are keyed by name and year so quotation, sales order and
// client account numbers each restart at 1 every January.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextValue atomically retrieves and increments the sequence for a name/year.
// Uses SELECT FOR UPDATE so concurrent callers never observe the same value.
// If no sequence exists for the name/year, it creates one starting at 1.
func (r *SequenceRepository) NextValue(ctx context.Context, name string, year int) (int, error) {
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.nextValueTx(tx, name, year, &next)
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}

// NextValueTx is the same as NextValue but runs inside an existing
// transaction, for callers that need the number and the numbered row
// committed together.
func (r *SequenceRepository) NextValueTx(tx *gorm.DB, name string, year int) (int, error) {
	var next int
	if err := r.nextValueTx(tx, name, year, &next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *SequenceRepository) nextValueTx(tx *gorm.DB, name string, year int, next *int) error {
	var seq domain.Sequence

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ? AND year = ?", name, year).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		seq = domain.Sequence{
			Name:      name,
			Year:      year,
			Value:     1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := tx.Create(&seq).Error; err != nil {
			return fmt.Errorf("failed to create sequence: %w", err)
		}
		*next = 1
		return nil
	}
	if result.Error != nil {
		return fmt.Errorf("failed to get sequence: %w", result.Error)
	}

	*next = seq.Value + 1
	if err := tx.Model(&seq).
		Where("name = ? AND year = ?", name, year).
		Updates(map[string]interface{}{
			"value":      *next,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update sequence: %w", err)
	}

	return nil
}

// CurrentValue retrieves the current sequence value without incrementing.
// Returns 0 if no sequence exists for the name/year.
func (r *SequenceRepository) CurrentValue(ctx context.Context, name string, year int) (int, error) {
	var seq domain.Sequence
	result := r.db.WithContext(ctx).
		Where("name = ? AND year = ?", name, year).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", result.Error)
	}

	return seq.Value, nil
}
