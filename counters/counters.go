// Package counters keeps denormalized integer columns in step with the
// collections they mirror. Every function takes the transaction that writes
// the related record so both changes commit or roll back together.
package counters

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// Add moves column on the row identified by id by delta, never below zero.
// Only the counter column is written.
func Add(tx *gorm.DB, model any, column string, id uint, delta int64) error {
	if delta == 0 || id == 0 {
		return nil
	}
	expr := gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s + ? < 0 THEN 0 ELSE %[1]s + ? END", column), delta, delta)
	if err := tx.Model(model).Where("id = ?", id).UpdateColumn(column, expr).Error; err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	return nil
}

func Increment(tx *gorm.DB, model any, column string, id uint) error {
	return Add(tx, model, column, id, 1)
}

func Decrement(tx *gorm.DB, model any, column string, id uint) error {
	return Add(tx, model, column, id, -1)
}

// Membership computes, per owner id, how far each counter has to move when a
// record that used to count towards before now counts towards after.
// A nil slice means the record did not count towards anything.
func Membership(before, after []uint) map[uint]int64 {
	delta := make(map[uint]int64)
	for _, id := range before {
		if id != 0 {
			delta[id]--
		}
	}
	for _, id := range after {
		if id != 0 {
			delta[id]++
		}
	}
	for id, d := range delta {
		if d == 0 {
			delete(delta, id)
		}
	}
	return delta
}

// ApplyMembership applies Membership(before, after) to column of model.
// Rows are touched in id order so concurrent writers lock them consistently.
func ApplyMembership(tx *gorm.DB, model any, column string, before, after []uint) error {
	delta := Membership(before, after)
	ids := make([]uint, 0, len(delta))
	for id := range delta {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := Add(tx, model, column, id, delta[id]); err != nil {
			return err
		}
	}
	return nil
}
