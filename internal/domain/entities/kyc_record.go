package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents the durable review status of a submission
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusWaiting  KYCStatus = "waiting"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

// StatusNotSubmitted is shown when a user has no durable record.
const StatusNotSubmitted = "NOT SUBMITTED"

// Valid reports whether s is one of the persisted statuses.
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCStatusPending, KYCStatusWaiting, KYCStatusApproved, KYCStatusRejected:
		return true
	}
	return false
}

// KYCRecord is the durable per-user KYC submission
type KYCRecord struct {
	ID            uuid.UUID   `json:"id"`
	UserID        int64       `json:"userId"`
	Email         null.String `json:"email,omitempty"`
	FrontImageRef null.String `json:"frontImageRef,omitempty"`
	BackImageRef  null.String `json:"backImageRef,omitempty"`
	Status        KYCStatus   `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// IsApproved reports whether the record has graduated out of the workflow.
func (r *KYCRecord) IsApproved() bool {
	return r != nil && r.Status == KYCStatusApproved
}

// StatusLabel renders a record status for users, or NOT SUBMITTED when absent.
func StatusLabel(r *KYCRecord) string {
	if r == nil || r.Status == "" {
		return StatusNotSubmitted
	}
	return strings.ToUpper(string(r.Status))
}

// KYCRecordUpdate carries the fields written by one upsert; unset fields are left untouched.
// ClearBackImageRef nulls the stored back image unless BackImageRef is set.
type KYCRecordUpdate struct {
	Email             null.String
	FrontImageRef     null.String
	BackImageRef      null.String
	ClearBackImageRef bool
	Status            KYCStatus
}
