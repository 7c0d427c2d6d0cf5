// Package couple resolves pairing codes into couple namespaces.
package couple

import (
	"errors"
	"strings"
	"time"

	"nosdois-service/model"

	"gorm.io/gorm"
)

// ErrCodeTooShort rejects pairing codes shorter than four characters
// after normalization. Nothing is written when it is returned.
var ErrCodeTooShort = errors.New("pairing code must have at least 4 characters")

const minCodeLength = 4

// NormalizeCode trims and lowercases a raw pairing code so both partners
// resolve to the same namespace no matter how they typed it.
func NormalizeCode(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ResolveCode normalizes and validates a raw pairing code.
func ResolveCode(raw string) (string, error) {
	code := NormalizeCode(raw)
	if len(code) < minCodeLength {
		return "", ErrCodeTooShort
	}
	return code, nil
}

// Connect resolves a raw code and makes sure its couple record exists,
// creating it with default settings on first connection.
func Connect(db *gorm.DB, raw string) (*model.Couple, error) {
	code, err := ResolveCode(raw)
	if err != nil {
		return nil, err
	}

	record := &model.Couple{}
	err = db.Where(&model.Couple{Code: code}).First(record).Error
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	defaults := model.DefaultSettings(now)
	record = &model.Couple{
		Code:                 code,
		Created:              now.UnixMilli(),
		TargetDate:           defaults.TargetDate,
		NotificationsEnabled: defaults.NotificationsEnabled,
		NightMode:            defaults.NightMode,
		Brightness:           defaults.Brightness,
	}
	if err := db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
