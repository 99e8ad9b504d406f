package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KYCRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        int64     `gorm:"uniqueIndex;not null"`
	Email         *string   `gorm:"type:varchar(255)"`
	FrontImageRef *string   `gorm:"type:varchar(255)"`
	BackImageRef  *string   `gorm:"type:varchar(255)"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (KYCRecord) TableName() string {
	return "kyc_records"
}

// BeforeCreate assigns a time-ordered surrogate key so every driver gets the same ids.
func (m *KYCRecord) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	m.ID = id
	return nil
}
