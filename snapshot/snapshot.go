// Package snapshot builds the full per-collection result sets pushed to
// clients. A snapshot always replaces the client's slice wholesale.
package snapshot

import (
	"fmt"

	"nosdois-service/model"

	"gorm.io/gorm"
)

// History is capped at the most recent check-ins at read time; writes are
// never trimmed.
const HistoryLimit = 50

func Photos(db *gorm.DB, couple string) ([]model.Photo, error) {
	photos := []model.Photo{}
	err := db.Where("couple_id = ?", couple).Order("timestamp desc").Find(&photos).Error
	return photos, err
}

func Trash(db *gorm.DB, couple string) ([]model.Photo, error) {
	photos := []model.Photo{}
	err := db.Table(model.TrashTable).Where("couple_id = ?", couple).Order("timestamp desc").Find(&photos).Error
	return photos, err
}

func Diary(db *gorm.DB, couple string) ([]model.DiaryEntry, error) {
	entries := []model.DiaryEntry{}
	err := db.Where("couple_id = ?", couple).Order("timestamp desc").Find(&entries).Error
	return entries, err
}

func Chats(db *gorm.DB, couple string) ([]model.ChatEntry, error) {
	entries := []model.ChatEntry{}
	err := db.Where("couple_id = ?", couple).Order("timestamp desc").Find(&entries).Error
	return entries, err
}

func Favorites(db *gorm.DB, couple string) ([]model.FavoriteMessage, error) {
	entries := []model.FavoriteMessage{}
	err := db.Where("couple_id = ?", couple).Order("timestamp desc").Find(&entries).Error
	return entries, err
}

func History(db *gorm.DB, couple string) ([]model.EmotionHistoryEntry, error) {
	entries := []model.EmotionHistoryEntry{}
	err := db.Where("couple_id = ?", couple).Order("timestamp desc").Limit(HistoryLimit).Find(&entries).Error
	return entries, err
}

func Settings(db *gorm.DB, couple string) (model.Settings, error) {
	record := model.Couple{}
	if err := db.Where(&model.Couple{Code: couple}).First(&record).Error; err != nil {
		return model.Settings{}, err
	}
	return record.Settings(), nil
}

// Collection dispatches by collection name and returns the payload for the
// matching snapshot event.
func Collection(db *gorm.DB, couple string, name string) (any, error) {
	switch name {
	case model.CollectionPhotos:
		return Photos(db, couple)
	case model.CollectionTrash:
		return Trash(db, couple)
	case model.CollectionDiary:
		return Diary(db, couple)
	case model.CollectionChats:
		return Chats(db, couple)
	case model.CollectionFavorites:
		return Favorites(db, couple)
	case model.CollectionHistory:
		return History(db, couple)
	case model.CollectionSettings:
		return Settings(db, couple)
	}
	return nil, fmt.Errorf("unknown collection %q", name)
}
