package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"kyc-bot.backend/internal/domain/entities"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/internal/infrastructure/models"
)

// KYCRecordRepository implements durable KYC record operations
type KYCRecordRepository struct {
	db *gorm.DB
}

// NewKYCRecordRepository creates a new KYC record repository
func NewKYCRecordRepository(db *gorm.DB) *KYCRecordRepository {
	return &KYCRecordRepository{db: db}
}

// AutoMigrate creates or updates the kyc_records table
func (r *KYCRecordRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&models.KYCRecord{})
}

// Ping checks that the record store is reachable
func (r *KYCRecordRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FindByUserID gets the record owned by a chat user
func (r *KYCRecordRepository) FindByUserID(ctx context.Context, userID int64) (*entities.KYCRecord, error) {
	var m models.KYCRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toKYCRecordEntity(&m), nil
}

// Upsert writes the set fields of update. Without createIfMissing a missing record yields ErrNotFound.
func (r *KYCRecordRepository) Upsert(ctx context.Context, userID int64, update entities.KYCRecordUpdate, createIfMissing bool) (*entities.KYCRecord, error) {
	if update.Status != "" && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domainerrors.ErrInvalidInput, update.Status)
	}

	now := time.Now()
	columns := updateColumns(update)
	db := r.db.WithContext(ctx)

	if createIfMissing {
		m := &models.KYCRecord{
			UserID:        userID,
			Email:         update.Email.Ptr(),
			FrontImageRef: update.FrontImageRef.Ptr(),
			BackImageRef:  update.BackImageRef.Ptr(),
			Status:        string(update.Status),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if m.Status == "" {
			m.Status = string(entities.KYCStatusPending)
		}

		assignments := make([]string, 0, len(columns)+1)
		for col := range columns {
			assignments = append(assignments, col)
		}
		sort.Strings(assignments)
		assignments = append(assignments, "updated_at")

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		}).Create(m).Error
		if err != nil {
			return nil, err
		}
		return r.FindByUserID(ctx, userID)
	}

	columns["updated_at"] = now
	result := db.Model(&models.KYCRecord{}).Where("user_id = ?", userID).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.FindByUserID(ctx, userID)
}

func updateColumns(update entities.KYCRecordUpdate) map[string]interface{} {
	columns := map[string]interface{}{}
	if update.Email.Valid {
		columns["email"] = update.Email.String
	}
	if update.FrontImageRef.Valid {
		columns["front_image_ref"] = update.FrontImageRef.String
	}
	if update.BackImageRef.Valid {
		columns["back_image_ref"] = update.BackImageRef.String
	} else if update.ClearBackImageRef {
		columns["back_image_ref"] = nil
	}
	if update.Status != "" {
		columns["status"] = string(update.Status)
	}
	return columns
}

func toKYCRecordEntity(m *models.KYCRecord) *entities.KYCRecord {
	return &entities.KYCRecord{
		ID:            m.ID,
		UserID:        m.UserID,
		Email:         null.StringFromPtr(m.Email),
		FrontImageRef: null.StringFromPtr(m.FrontImageRef),
		BackImageRef:  null.StringFromPtr(m.BackImageRef),
		Status:        entities.KYCStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
