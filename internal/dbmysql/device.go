package dbmysql

import (
	"time"

	"dashnotify/internal/common"
)

// Device is one row of device_tokens. The token is the natural key.
type Device struct {
	Token      string    `gorm:"primaryKey;size:255"`
	UserID     string    `gorm:"not null;index;size:36"`
	DeviceType string    `gorm:"not null;size:10"`
	LastSeen   time.Time `gorm:"not null;index"`
}

func (Device) TableName() string {
	return "device_tokens"
}

func (d *Device) toDomain() *common.DeviceToken {
	return &common.DeviceToken{
		UserID:     d.UserID,
		Token:      d.Token,
		DeviceType: d.DeviceType,
		LastSeen:   d.LastSeen,
	}
}
