package repository

import (
	"errors"
	"testing"
)

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("expected sqlite, got %s", got)
	}
}

func TestDBDialectNameFromConnection(t *testing.T) {
	_, db := setupProductRepositoryTest(t)
	if got := dbDialectName(db); got != "sqlite" {
		t.Fatalf("expected sqlite, got %s", got)
	}
}

func TestApplyRowLockSQLiteNoop(t *testing.T) {
	_, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, db, "Laptop", "1299.99", 10)

	// sqlite 下不追加 FOR UPDATE，查询应正常执行
	var loaded struct{ ID uint }
	err := applyRowLock(db).Table("products").Where("id = ?", product.ID).Scan(&loaded).Error
	if err != nil {
		t.Fatalf("locked query failed: %v", err)
	}
	if loaded.ID != product.ID {
		t.Fatalf("expected product %d, got %d", product.ID, loaded.ID)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if isUniqueViolation(nil) {
		t.Fatalf("nil error should not be a unique violation")
	}
	if !isUniqueViolation(errors.New("UNIQUE constraint failed: carts.user_id")) {
		t.Fatalf("sqlite unique error should match")
	}
	if !isUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_carts_user_id"`)) {
		t.Fatalf("postgres unique error should match")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("unrelated error should not match")
	}
}
