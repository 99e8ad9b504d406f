package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestTableNames(t *testing.T) {
	if got := (KYCRecord{}).TableName(); got != "kyc_records" {
		t.Fatalf("unexpected KYCRecord table name: %s", got)
	}
}

func TestKYCRecordBeforeCreate(t *testing.T) {
	m := &KYCRecord{}
	if err := m.BeforeCreate(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if m.ID.Version() != 7 {
		t.Fatalf("expected uuid v7, got v%d", m.ID.Version())
	}

	fixed := uuid.New()
	m = &KYCRecord{ID: fixed}
	_ = m.BeforeCreate(nil)
	if m.ID != fixed {
		t.Fatal("expected existing id to be kept")
	}
}
