// Package gateway translates local intents into atomic remote writes.
// Every successful write announces the affected collection so the sync
// pipeline can republish its snapshot.
package gateway

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nosdois-service/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Publisher receives change announcements after acknowledged writes.
type Publisher interface {
	CollectionChanged(couple string, collection string)
}

var ErrUnknownEmotion = errors.New("unknown emotion id")

type Gateway struct {
	db  *gorm.DB
	pub Publisher
}

func New(db *gorm.DB, pub Publisher) *Gateway {
	return &Gateway{db: db, pub: pub}
}

func (g *Gateway) changed(couple string, collections ...string) {
	if g.pub == nil {
		return
	}
	for _, collection := range collections {
		g.pub.CollectionChanged(couple, collection)
	}
}

// NewPhotoID mints a gallery document id: photo_<epoch-ms>_<suffix>.
func NewPhotoID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("photo_%d_%s", now.UnixMilli(), suffix)
}

// AddPhoto inserts into the active gallery.
func (g *Gateway) AddPhoto(couple string, url string, caption string) (*model.Photo, error) {
	if couple == "" {
		return nil, nil
	}
	now := time.Now()
	photo := &model.Photo{
		ID:        NewPhotoID(now),
		CoupleID:  couple,
		URL:       url,
		Caption:   caption,
		Timestamp: now.UnixMilli(),
	}
	if err := g.db.Create(photo).Error; err != nil {
		return nil, err
	}
	g.changed(couple, model.CollectionPhotos)
	return photo, nil
}

// TrashPhoto moves a gallery photo into the bin, both-or-neither.
func (g *Gateway) TrashPhoto(couple string, id string) error {
	if couple == "" {
		return nil
	}
	err := g.db.Transaction(func(tx *gorm.DB) error {
		photo := model.Photo{}
		if err := tx.Where("couple_id = ? AND id = ?", couple, id).First(&photo).Error; err != nil {
			return err
		}
		if err := tx.Table(model.TrashTable).Create(&photo).Error; err != nil {
			return err
		}
		return tx.Where("couple_id = ? AND id = ?", couple, id).Delete(&model.Photo{}).Error
	})
	if err != nil {
		return err
	}
	g.changed(couple, model.CollectionPhotos, model.CollectionTrash)
	return nil
}

// RestorePhoto moves a binned photo back to the gallery, both-or-neither.
// The restored document is byte-for-byte the one that was trashed.
func (g *Gateway) RestorePhoto(couple string, id string) error {
	if couple == "" {
		return nil
	}
	err := g.db.Transaction(func(tx *gorm.DB) error {
		photo := model.Photo{}
		if err := tx.Table(model.TrashTable).Where("couple_id = ? AND id = ?", couple, id).First(&photo).Error; err != nil {
			return err
		}
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
		return tx.Table(model.TrashTable).Where("couple_id = ? AND id = ?", couple, id).Delete(&model.Photo{}).Error
	})
	if err != nil {
		return err
	}
	g.changed(couple, model.CollectionPhotos, model.CollectionTrash)
	return nil
}

// DeletePhoto removes a photo from the bin for good.
func (g *Gateway) DeletePhoto(couple string, id string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Table(model.TrashTable).Where("couple_id = ? AND id = ?", couple, id).Delete(&model.Photo{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionTrash)
	return nil
}

// EmptyTrash removes every binned photo of the couple. The gallery is
// untouched.
func (g *Gateway) EmptyTrash(couple string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Table(model.TrashTable).Where("couple_id = ?", couple).Delete(&model.Photo{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionTrash)
	return nil
}

// UpsertDiary writes a diary entry in place. Diary has no soft delete.
func (g *Gateway) UpsertDiary(couple string, entry model.DiaryEntry) error {
	if couple == "" {
		return nil
	}
	entry.CoupleID = couple
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("diary_%d", time.Now().UnixMilli())
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if err := g.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionDiary)
	return nil
}

func (g *Gateway) DeleteDiary(couple string, id string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ? AND id = ?", couple, id).Delete(&model.DiaryEntry{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionDiary)
	return nil
}

// RecordMood appends a history entry for a recognized emotion.
func (g *Gateway) RecordMood(couple string, emotionID string) (*model.EmotionHistoryEntry, error) {
	if couple == "" {
		return nil, nil
	}
	emotion, ok := model.Emotions[emotionID]
	if !ok {
		return nil, ErrUnknownEmotion
	}
	now := time.Now().UnixMilli()
	entry := &model.EmotionHistoryEntry{
		ID:        fmt.Sprintf("hist_%d", now),
		CoupleID:  couple,
		EmotionID: emotion.ID,
		Label:     emotion.Label,
		Icon:      emotion.Icon,
		Timestamp: now,
	}
	if err := g.db.Create(entry).Error; err != nil {
		return nil, err
	}
	g.changed(couple, model.CollectionHistory)
	return entry, nil
}

func (g *Gateway) DeleteHistory(couple string, id string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ? AND id = ?", couple, id).Delete(&model.EmotionHistoryEntry{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionHistory)
	return nil
}

// ClearHistory deletes every check-in of the couple in one batch.
func (g *Gateway) ClearHistory(couple string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ?", couple).Delete(&model.EmotionHistoryEntry{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionHistory)
	return nil
}

// RecordChat upserts a whole conversation and returns the persisted
// entry, with its id minted here when the caller sent none. The entry
// always carries the full message list; appending a turn rewrites the
// document.
func (g *Gateway) RecordChat(couple string, entry model.ChatEntry) (*model.ChatEntry, error) {
	if couple == "" {
		return nil, nil
	}
	entry.CoupleID = couple
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("chat_%d", time.Now().UnixMilli())
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if err := g.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return nil, err
	}
	g.changed(couple, model.CollectionChats)
	return &entry, nil
}

// AppendChatMessage reads the latest persisted message list, appends one
// message and rewrites the entry.
func (g *Gateway) AppendChatMessage(couple string, chatID string, message model.Message) error {
	if couple == "" {
		return nil
	}
	entry := model.ChatEntry{}
	if err := g.db.Where("couple_id = ? AND id = ?", couple, chatID).First(&entry).Error; err != nil {
		return err
	}
	entry.Messages = append(entry.Messages, message)
	entry.Timestamp = time.Now().UnixMilli()
	_, err := g.RecordChat(couple, entry)
	return err
}

func (g *Gateway) DeleteChat(couple string, id string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ? AND id = ?", couple, id).Delete(&model.ChatEntry{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionChats)
	return nil
}

// ClearChats deletes every conversation of the couple in one batch.
func (g *Gateway) ClearChats(couple string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ?", couple).Delete(&model.ChatEntry{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionChats)
	return nil
}

// ToggleFavorite inserts the text unless an entry with identical text
// already exists, in which case that entry is removed instead.
func (g *Gateway) ToggleFavorite(couple string, text string, emotion string) error {
	if couple == "" {
		return nil
	}
	existing := model.FavoriteMessage{}
	err := g.db.Where("couple_id = ? AND text = ?", couple, text).First(&existing).Error
	switch {
	case err == nil:
		if err := g.db.Where("couple_id = ? AND id = ?", couple, existing.ID).Delete(&model.FavoriteMessage{}).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		// Nanosecond ids keep the numeric-string shape without colliding
		// when two favorites land in the same millisecond.
		favorite := model.FavoriteMessage{
			ID:        strconv.FormatInt(now.UnixNano(), 10),
			CoupleID:  couple,
			Text:      text,
			Timestamp: now.UnixMilli(),
			Emotion:   emotion,
		}
		if err := g.db.Create(&favorite).Error; err != nil {
			return err
		}
	default:
		return err
	}
	g.changed(couple, model.CollectionFavorites)
	return nil
}

func (g *Gateway) DeleteFavorite(couple string, id string) error {
	if couple == "" {
		return nil
	}
	if err := g.db.Where("couple_id = ? AND id = ?", couple, id).Delete(&model.FavoriteMessage{}).Error; err != nil {
		return err
	}
	g.changed(couple, model.CollectionFavorites)
	return nil
}

// UpdateSettings merge-writes only the fields the patch names. Brightness
// is clamped at this boundary.
func (g *Gateway) UpdateSettings(couple string, patch model.SettingsPatch) (*model.Settings, error) {
	if couple == "" {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if patch.TargetDate != nil {
		updates["target_date"] = *patch.TargetDate
	}
	if patch.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *patch.NotificationsEnabled
	}
	if patch.NightMode != nil {
		updates["night_mode"] = *patch.NightMode
	}
	if patch.Brightness != nil {
		updates["brightness"] = model.ClampBrightness(*patch.Brightness)
	}

	if len(updates) > 0 {
		if err := g.db.Model(&model.Couple{}).Where("code = ?", couple).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	record := model.Couple{}
	if err := g.db.Where(&model.Couple{Code: couple}).First(&record).Error; err != nil {
		return nil, err
	}
	settings := record.Settings()
	g.changed(couple, model.CollectionSettings)
	return &settings, nil
}
