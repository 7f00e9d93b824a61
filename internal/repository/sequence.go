package repository

import (
	"context"
	"lpg-marketplace/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceRepository interface {
	Next(ctx context.Context, tx *gorm.DB, prefix string, at time.Time) (string, error)
}

type sequenceRepoImpl struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepoImpl{db: db}
}

// Next bumps the (prefix, day) counter and renders the resulting document number.
// Run inside the caller's transaction so the number is released on rollback.
func (r *sequenceRepoImpl) Next(ctx context.Context, tx *gorm.DB, prefix string, at time.Time) (string, error) {
	db := conn(r.db, tx).WithContext(ctx)
	day := model.DayKey(at)

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "prefix"}, {Name: "date_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"counter":    gorm.Expr("document_sequences.counter + ?", 1),
			"updated_at": time.Now(),
		}),
	}).Create(&model.DocumentSequence{Prefix: prefix, DateKey: day, Counter: 1}).Error
	if err != nil {
		return "", err
	}

	var seq model.DocumentSequence
	err = db.
		Where("prefix = ? AND date_key = ?", prefix, day).
		First(&seq).Error
	if err != nil {
		return "", err
	}

	return model.FormatDocumentNumber(prefix, day, seq.Counter), nil
}
