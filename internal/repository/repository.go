package repository

import "gorm.io/gorm"

// conn picks the caller's transaction when there is one.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
