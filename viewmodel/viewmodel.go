// Package viewmodel holds the client-side mirror of one couple's remote
// state: a single snapshot replaced per collection by live updates, plus
// the ephemeral navigation flags that never round-trip through the store.
package viewmodel

import (
	"encoding/json"
	"sync"
	"time"

	"nosdois-service/model"
)

type View string

const (
	ViewHub       View = "hub"
	ViewCountdown View = "countdown"
	ViewWriting   View = "writing"
	ViewGallery   View = "gallery"
	ViewFavorites View = "favorites"
	ViewSettings  View = "settings"
	ViewMemories  View = "memories"
	ViewTrash     View = "trash"
	ViewHistory   View = "history"
	ViewChats     View = "chats"
	ViewDiary     View = "diary"
)

// State is a copy of the whole snapshot handed to renderers.
type State struct {
	CoupleID             string
	CurrentView          View
	Photos               []model.Photo
	Trash                []model.Photo
	Favorites            []model.FavoriteMessage
	History              []model.EmotionHistoryEntry
	Chats                []model.ChatEntry
	Diary                []model.DiaryEntry
	Settings             model.Settings
	NewPhotoNotification bool
}

// Model is the one shared mutable resource. Updates may arrive from the
// subscription goroutine while the interaction path reads, so access is
// serialized here rather than by the caller's execution model.
type Model struct {
	mu sync.Mutex

	coupleID    string
	currentView View
	backView    View

	resumedChat    *model.ChatEntry
	resumedEmotion string

	photos    []model.Photo
	trash     []model.Photo
	favorites []model.FavoriteMessage
	history   []model.EmotionHistoryEntry
	chats     []model.ChatEntry
	diary     []model.DiaryEntry

	settings             model.Settings
	newPhotoNotification bool

	// generation fences out setters bound before the last couple switch.
	generation int
}

func New() *Model {
	return &Model{
		currentView: ViewHub,
		backView:    ViewHub,
		settings:    model.DefaultSettings(time.Now()),
	}
}

// SetCoupleID switches the active namespace. Every binding handed out
// before the switch is invalidated synchronously: no snapshot from the
// old namespace can land in the new view-model.
func (m *Model) SetCoupleID(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.coupleID == code {
		return
	}
	m.coupleID = code
	m.generation++
	m.clearSlicesLocked()
}

// Reset returns the model to its pre-pairing state. Remote data is not
// touched, only the local pointer to it.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupleID = ""
	m.generation++
	m.currentView = ViewHub
	m.backView = ViewHub
	m.resumedChat = nil
	m.resumedEmotion = ""
	m.settings = model.DefaultSettings(time.Now())
	m.newPhotoNotification = false
	m.clearSlicesLocked()
}

func (m *Model) clearSlicesLocked() {
	m.photos = nil
	m.trash = nil
	m.favorites = nil
	m.history = nil
	m.chats = nil
	m.diary = nil
}

func (m *Model) CoupleID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coupleID
}

// Bind returns one setter per collection name, each replacing its slice
// wholesale with a decoded snapshot payload. The settings setter merges
// instead, so a partner's partial update cannot clobber known fields.
// Setters bound before a later SetCoupleID become no-ops.
func (m *Model) Bind() map[string]func(payload json.RawMessage) error {
	m.mu.Lock()
	generation := m.generation
	m.mu.Unlock()

	replace := func(apply func(json.RawMessage) error) func(json.RawMessage) error {
		return func(payload json.RawMessage) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.generation != generation {
				return nil
			}
			return apply(payload)
		}
	}

	return map[string]func(json.RawMessage) error{
		model.CollectionPhotos: replace(func(payload json.RawMessage) error {
			photos := []model.Photo{}
			if err := json.Unmarshal(payload, &photos); err != nil {
				return err
			}
			m.photos = photos
			return nil
		}),
		model.CollectionTrash: replace(func(payload json.RawMessage) error {
			trash := []model.Photo{}
			if err := json.Unmarshal(payload, &trash); err != nil {
				return err
			}
			m.trash = trash
			return nil
		}),
		model.CollectionFavorites: replace(func(payload json.RawMessage) error {
			favorites := []model.FavoriteMessage{}
			if err := json.Unmarshal(payload, &favorites); err != nil {
				return err
			}
			m.favorites = favorites
			return nil
		}),
		model.CollectionHistory: replace(func(payload json.RawMessage) error {
			history := []model.EmotionHistoryEntry{}
			if err := json.Unmarshal(payload, &history); err != nil {
				return err
			}
			m.history = history
			return nil
		}),
		model.CollectionChats: replace(func(payload json.RawMessage) error {
			chats := []model.ChatEntry{}
			if err := json.Unmarshal(payload, &chats); err != nil {
				return err
			}
			m.chats = chats
			return nil
		}),
		model.CollectionDiary: replace(func(payload json.RawMessage) error {
			diary := []model.DiaryEntry{}
			if err := json.Unmarshal(payload, &diary); err != nil {
				return err
			}
			m.diary = diary
			return nil
		}),
		model.CollectionSettings: replace(func(payload json.RawMessage) error {
			patch := model.SettingsPatch{}
			if err := json.Unmarshal(payload, &patch); err != nil {
				return err
			}
			m.settings = m.settings.Merge(patch)
			return nil
		}),
	}
}

// MergeSettings is the optimistic local settings path: applied
// immediately, before the remote write round-trips.
func (m *Model) MergeSettings(patch model.SettingsPatch) model.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = m.settings.Merge(patch)
	return m.settings
}

func (m *Model) SetPhotoNotification(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newPhotoNotification = on
}

// Snapshot copies the full state for rendering.
func (m *Model) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		CoupleID:             m.coupleID,
		CurrentView:          m.currentView,
		Photos:               append([]model.Photo(nil), m.photos...),
		Trash:                append([]model.Photo(nil), m.trash...),
		Favorites:            append([]model.FavoriteMessage(nil), m.favorites...),
		History:              append([]model.EmotionHistoryEntry(nil), m.history...),
		Chats:                append([]model.ChatEntry(nil), m.chats...),
		Diary:                append([]model.DiaryEntry(nil), m.diary...),
		Settings:             m.settings,
		NewPhotoNotification: m.newPhotoNotification,
	}
}
