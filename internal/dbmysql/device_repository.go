package dbmysql

import (
	"context"
	"fmt"
	"time"

	"dashnotify/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) common.DeviceRepository {
	return &deviceRepository{db: db}
}

// Upsert inserts the token or, when it already exists, re-associates it
// with the user and bumps last_seen. One statement, last write wins.
func (r *deviceRepository) Upsert(ctx context.Context, device *common.DeviceToken) error {
	//validating input
	if device.Token == "" {
		return common.ErrEmptyToken
	}
	if device.UserID == "" {
		return common.ErrEmptyUserID
	}

	lastSeen := device.LastSeen
	if lastSeen.IsZero() {
		lastSeen = time.Now()
	}

	row := &Device{
		Token:      device.Token,
		UserID:     device.UserID,
		DeviceType: device.DeviceType,
		LastSeen:   lastSeen,
	}

	// mysql turns this into INSERT ... ON DUPLICATE KEY UPDATE, token is the primary key
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "last_seen"}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert device token: %w", err)
	}

	return nil
}

func (r *deviceRepository) ByUserID(ctx context.Context, userID string) ([]*common.DeviceToken, error) {
	var devices []*Device

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_seen DESC").
		Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get device tokens: %w", err)
	}

	result := make([]*common.DeviceToken, len(devices))
	for i, device := range devices {
		result[i] = device.toDomain()
	}

	return result, nil
}

func (r *deviceRepository) DeleteToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Delete(&Device{}, "token = ?", token)

	if result.Error != nil {
		return fmt.Errorf("failed to delete device token: %w", result.Error)
	}

	return nil
}
