package model

import "time"

// Couple is the namespace record shared by both partners. The settings
// document lives inline: exactly one per couple, updated in place.
type Couple struct {
	Code                 string `gorm:"primaryKey" json:"code"`
	Created              int64  `gorm:"not null" json:"created"`
	TargetDate           string `gorm:"not null" json:"targetDate"`
	NotificationsEnabled bool   `gorm:"not null" json:"notificationsEnabled"`
	NightMode            bool   `gorm:"not null" json:"nightMode"`
	Brightness           int    `gorm:"not null" json:"brightness"`
}

func (Couple) TableName() string { return "couples" }

// Settings is the wire shape of the couple's settings document.
type Settings struct {
	TargetDate           string `json:"targetDate"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	NightMode            bool   `json:"nightMode"`
	Brightness           int    `json:"brightness"`
}

// SettingsPatch carries only the fields a partial update names. Absent
// fields must never clobber the stored document.
type SettingsPatch struct {
	TargetDate           *string `json:"targetDate,omitempty"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	NightMode            *bool   `json:"nightMode,omitempty"`
	Brightness           *int    `json:"brightness,omitempty"`
}

const (
	BrightnessMin = 20
	BrightnessMax = 100
)

// ClampBrightness forces a brightness value into the valid range.
// Boundary values pass through exactly.
func ClampBrightness(value int) int {
	if value < BrightnessMin {
		return BrightnessMin
	}
	if value > BrightnessMax {
		return BrightnessMax
	}
	return value
}

// Merge applies a patch field by field and returns the result.
func (s Settings) Merge(patch SettingsPatch) Settings {
	if patch.TargetDate != nil {
		s.TargetDate = *patch.TargetDate
	}
	if patch.NotificationsEnabled != nil {
		s.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.NightMode != nil {
		s.NightMode = *patch.NightMode
	}
	if patch.Brightness != nil {
		s.Brightness = ClampBrightness(*patch.Brightness)
	}
	return s
}

// DefaultSettings is the document written when a couple first connects:
// countdown five days out, notifications on, full brightness.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		TargetDate:           now.AddDate(0, 0, 5).Format("2006-01-02"),
		NotificationsEnabled: true,
		NightMode:            false,
		Brightness:           BrightnessMax,
	}
}

func (c Couple) Settings() Settings {
	return Settings{
		TargetDate:           c.TargetDate,
		NotificationsEnabled: c.NotificationsEnabled,
		NightMode:            c.NightMode,
		Brightness:           c.Brightness,
	}
}
