package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Photo lives in exactly one of two tables with identical schema: the
// active gallery ("photos") or the soft-delete bin ("trash"). The URL is a
// self-contained data-URI, not a blob reference.
type Photo struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CoupleID  string `gorm:"index;not null" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Caption   string `json:"caption"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
}

func (Photo) TableName() string { return "photos" }

// TrashTable is the secondary table holding trashed photos.
const TrashTable = "trash"

type DiaryEntry struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CoupleID  string `gorm:"index;not null" json:"-"`
	Date      string `gorm:"not null" json:"date"`
	Content   string `json:"content"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
}

func (DiaryEntry) TableName() string { return "diary" }

type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

const (
	SenderUser    = "user"
	SenderPartner = "partner"
)

// MessageList stores a chat's full message sequence as a JSON column.
type MessageList []Message

func (m MessageList) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MessageList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = nil
		return nil
	}
	return errors.New("unsupported message list column type")
}

// ChatEntry is mutable: each appended turn rewrites the entry with the
// full message list.
type ChatEntry struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	CoupleID  string      `gorm:"index;not null" json:"-"`
	Messages  MessageList `gorm:"type:text" json:"messages"`
	Emotion   string      `json:"emotion"`
	Timestamp int64       `gorm:"not null" json:"timestamp"`
}

func (ChatEntry) TableName() string { return "chats" }

type FavoriteMessage struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CoupleID  string `gorm:"index;not null" json:"-"`
	Text      string `gorm:"not null" json:"text"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
	Emotion   string `json:"emotion,omitempty"`
}

func (FavoriteMessage) TableName() string { return "favorites" }

type EmotionHistoryEntry struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CoupleID  string `gorm:"index;not null" json:"-"`
	EmotionID string `gorm:"not null" json:"emotionId"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Timestamp int64  `gorm:"not null" json:"timestamp"`
}

func (EmotionHistoryEntry) TableName() string { return "history" }

// Collection names as seen by clients. Order matters only for the initial
// push; each one is replaced wholesale on change.
const (
	CollectionPhotos    = "photos"
	CollectionTrash     = "trash"
	CollectionDiary     = "diary"
	CollectionChats     = "chats"
	CollectionFavorites = "favorites"
	CollectionHistory   = "history"
	CollectionSettings  = "settings"
)

var Collections = []string{
	CollectionPhotos,
	CollectionTrash,
	CollectionDiary,
	CollectionChats,
	CollectionFavorites,
	CollectionHistory,
}
