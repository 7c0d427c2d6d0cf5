package gateway

import (
	"fmt"
	"strings"
	"testing"

	"nosdois-service/database"
	"nosdois-service/model"
	"nosdois-service/snapshot"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type change struct {
	couple     string
	collection string
}

type recordingPublisher struct {
	changes []change
}

func (r *recordingPublisher) CollectionChanged(couple string, collection string) {
	r.changes = append(r.changes, change{couple: couple, collection: collection})
}

func (r *recordingPublisher) collections() []string {
	names := make([]string, 0, len(r.changes))
	for _, c := range r.changes {
		names = append(names, c.collection)
	}
	return names
}

func newTestGateway(t *testing.T) (*Gateway, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	pub := &recordingPublisher{}
	return New(db, pub), db, pub
}

const testCouple = "nossoamor"

func addTestPhoto(t *testing.T, g *Gateway) *model.Photo {
	t.Helper()
	photo, err := g.AddPhoto(testCouple, "data:image/png;base64,aGVsbG8=", "nós dois")
	require.NoError(t, err)
	require.NotNil(t, photo)
	return photo
}

func TestAddPhotoIDFormat(t *testing.T) {
	g, _, _ := newTestGateway(t)

	photo := addTestPhoto(t, g)
	assert.True(t, strings.HasPrefix(photo.ID, "photo_"))
	assert.Len(t, strings.Split(photo.ID, "_"), 3)
	assert.NotZero(t, photo.Timestamp)
}

func TestPhotoExclusivity(t *testing.T) {
	g, db, _ := newTestGateway(t)
	photo := addTestPhoto(t, g)

	require.NoError(t, g.TrashPhoto(testCouple, photo.ID))

	gallery, err := snapshot.Photos(db, testCouple)
	require.NoError(t, err)
	trash, err := snapshot.Trash(db, testCouple)
	require.NoError(t, err)

	assert.Empty(t, gallery)
	require.Len(t, trash, 1)
	assert.Equal(t, photo.ID, trash[0].ID)
}

func TestTrashThenRestoreRoundTrip(t *testing.T) {
	g, db, _ := newTestGateway(t)
	photo := addTestPhoto(t, g)

	require.NoError(t, g.TrashPhoto(testCouple, photo.ID))
	require.NoError(t, g.RestorePhoto(testCouple, photo.ID))

	gallery, err := snapshot.Photos(db, testCouple)
	require.NoError(t, err)
	trash, err := snapshot.Trash(db, testCouple)
	require.NoError(t, err)

	assert.Empty(t, trash)
	require.Len(t, gallery, 1)
	assert.Equal(t, photo.ID, gallery[0].ID)
	assert.Equal(t, photo.URL, gallery[0].URL)
	assert.Equal(t, photo.Caption, gallery[0].Caption)
	assert.Equal(t, photo.Timestamp, gallery[0].Timestamp)
}

func TestTrashPhotoMissingFromGallery(t *testing.T) {
	g, _, _ := newTestGateway(t)
	err := g.TrashPhoto(testCouple, "photo_404_deadbeef")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPermanentDeleteOnlyTouchesTrash(t *testing.T) {
	g, db, _ := newTestGateway(t)
	kept := addTestPhoto(t, g)
	gone := addTestPhoto(t, g)

	require.NoError(t, g.TrashPhoto(testCouple, gone.ID))
	require.NoError(t, g.DeletePhoto(testCouple, gone.ID))

	gallery, err := snapshot.Photos(db, testCouple)
	require.NoError(t, err)
	trash, err := snapshot.Trash(db, testCouple)
	require.NoError(t, err)

	assert.Empty(t, trash)
	require.Len(t, gallery, 1)
	assert.Equal(t, kept.ID, gallery[0].ID)
}

func TestEmptyTrashLeavesGalleryUntouched(t *testing.T) {
	g, db, _ := newTestGateway(t)
	kept := addTestPhoto(t, g)
	for i := 0; i < 3; i++ {
		photo := addTestPhoto(t, g)
		require.NoError(t, g.TrashPhoto(testCouple, photo.ID))
	}

	require.NoError(t, g.EmptyTrash(testCouple))

	gallery, err := snapshot.Photos(db, testCouple)
	require.NoError(t, err)
	trash, err := snapshot.Trash(db, testCouple)
	require.NoError(t, err)

	assert.Empty(t, trash)
	require.Len(t, gallery, 1)
	assert.Equal(t, kept.ID, gallery[0].ID)
}

func TestEmptyTrashScopedToCouple(t *testing.T) {
	g, db, _ := newTestGateway(t)
	photo := addTestPhoto(t, g)
	require.NoError(t, g.TrashPhoto(testCouple, photo.ID))

	other, err := g.AddPhoto("outrocasal", "data:image/png;base64,aGVsbG8=", "")
	require.NoError(t, err)
	require.NoError(t, g.TrashPhoto("outrocasal", other.ID))

	require.NoError(t, g.EmptyTrash(testCouple))

	trash, err := snapshot.Trash(db, "outrocasal")
	require.NoError(t, err)
	assert.Len(t, trash, 1)
}

func TestFavoriteToggleInvolution(t *testing.T) {
	g, db, _ := newTestGateway(t)

	require.NoError(t, g.ToggleFavorite(testCouple, "meu lugar favorito", "longing"))
	favorites, err := snapshot.Favorites(db, testCouple)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "longing", favorites[0].Emotion)

	require.NoError(t, g.ToggleFavorite(testCouple, "meu lugar favorito", "longing"))
	favorites, err = snapshot.Favorites(db, testCouple)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteToggleKeepsDistinctTexts(t *testing.T) {
	g, db, _ := newTestGateway(t)

	require.NoError(t, g.ToggleFavorite(testCouple, "primeira", ""))
	require.NoError(t, g.ToggleFavorite(testCouple, "segunda", ""))
	require.NoError(t, g.ToggleFavorite(testCouple, "primeira", ""))

	favorites, err := snapshot.Favorites(db, testCouple)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "segunda", favorites[0].Text)
}

func TestFavoritesAddedBackToBackKeepDistinctIDs(t *testing.T) {
	g, db, _ := newTestGateway(t)

	texts := []string{"primeira", "segunda", "terceira", "quarta", "quinta"}
	for _, text := range texts {
		require.NoError(t, g.ToggleFavorite(testCouple, text, "happy"))
	}

	favorites, err := snapshot.Favorites(db, testCouple)
	require.NoError(t, err)
	require.Len(t, favorites, len(texts))

	ids := map[string]bool{}
	for _, f := range favorites {
		ids[f.ID] = true
	}
	assert.Len(t, ids, len(texts))
}

func TestUpsertDiaryCreatesThenUpdatesInPlace(t *testing.T) {
	g, db, _ := newTestGateway(t)

	entry := model.DiaryEntry{ID: "diary_1", Date: "2026-09-01", Content: "primeiro dia", Timestamp: 1000}
	require.NoError(t, g.UpsertDiary(testCouple, entry))

	entry.Content = "primeiro dia, revisado"
	entry.Timestamp = 2000
	require.NoError(t, g.UpsertDiary(testCouple, entry))

	diary, err := snapshot.Diary(db, testCouple)
	require.NoError(t, err)
	require.Len(t, diary, 1)
	assert.Equal(t, "primeiro dia, revisado", diary[0].Content)
	assert.EqualValues(t, 2000, diary[0].Timestamp)
}

func TestDeleteDiaryRemovesOnlyNamedEntry(t *testing.T) {
	g, db, _ := newTestGateway(t)

	require.NoError(t, g.UpsertDiary(testCouple, model.DiaryEntry{ID: "diary_1", Date: "2026-09-01", Timestamp: 1000}))
	require.NoError(t, g.UpsertDiary(testCouple, model.DiaryEntry{ID: "diary_2", Date: "2026-09-02", Timestamp: 2000}))

	require.NoError(t, g.DeleteDiary(testCouple, "diary_1"))

	diary, err := snapshot.Diary(db, testCouple)
	require.NoError(t, err)
	require.Len(t, diary, 1)
	assert.Equal(t, "diary_2", diary[0].ID)
}

func TestHistorySnapshotCapsAtNewestFifty(t *testing.T) {
	_, db, _ := newTestGateway(t)

	for i := 0; i < snapshot.HistoryLimit+10; i++ {
		require.NoError(t, db.Create(&model.EmotionHistoryEntry{
			ID:        fmt.Sprintf("hist_%d", i),
			CoupleID:  testCouple,
			EmotionID: "happy",
			Label:     "Feliz",
			Icon:      "😊",
			Timestamp: int64(i),
		}).Error)
	}

	history, err := snapshot.History(db, testCouple)
	require.NoError(t, err)
	require.Len(t, history, snapshot.HistoryLimit)
	assert.EqualValues(t, snapshot.HistoryLimit+9, history[0].Timestamp)
	assert.EqualValues(t, 10, history[len(history)-1].Timestamp)
}

func TestRecordChatMintsIDWhenMissing(t *testing.T) {
	g, db, _ := newTestGateway(t)

	persisted, err := g.RecordChat(testCouple, model.ChatEntry{
		Emotion: "Triste",
		Messages: model.MessageList{
			{ID: "1", Text: "saudade", Sender: model.SenderUser, Timestamp: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.True(t, strings.HasPrefix(persisted.ID, "chat_"))

	require.NoError(t, g.AppendChatMessage(testCouple, persisted.ID, model.Message{
		ID: "2", Text: "também sinto", Sender: model.SenderPartner, Timestamp: 2,
	}))

	chats, err := snapshot.Chats(db, testCouple)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, persisted.ID, chats[0].ID)
	assert.Len(t, chats[0].Messages, 2)
}

func seedCouple(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&model.Couple{
		Code:                 testCouple,
		Created:              1,
		TargetDate:           "2026-09-06",
		NotificationsEnabled: true,
		NightMode:            false,
		Brightness:           100,
	}).Error)
}

func TestUpdateSettingsMergesOnlyNamedFields(t *testing.T) {
	g, db, _ := newTestGateway(t)
	seedCouple(t, db)

	night := true
	settings, err := g.UpdateSettings(testCouple, model.SettingsPatch{NightMode: &night})
	require.NoError(t, err)

	assert.True(t, settings.NightMode)
	assert.Equal(t, "2026-09-06", settings.TargetDate)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, 100, settings.Brightness)
}

func TestUpdateSettingsIdempotent(t *testing.T) {
	g, db, _ := newTestGateway(t)
	seedCouple(t, db)

	brightness := 40
	patch := model.SettingsPatch{Brightness: &brightness}

	first, err := g.UpdateSettings(testCouple, patch)
	require.NoError(t, err)
	second, err := g.UpdateSettings(testCouple, patch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpdateSettingsClampsBrightness(t *testing.T) {
	g, db, _ := newTestGateway(t)
	seedCouple(t, db)

	tests := []struct {
		input int
		want  int
	}{
		{5, 20},
		{150, 100},
		{20, 20},
		{100, 100},
	}
	for _, tt := range tests {
		settings, err := g.UpdateSettings(testCouple, model.SettingsPatch{Brightness: &tt.input})
		require.NoError(t, err)
		assert.Equal(t, tt.want, settings.Brightness, "brightness %d", tt.input)
	}
}

func TestRecordMood(t *testing.T) {
	g, db, _ := newTestGateway(t)

	entry, err := g.RecordMood(testCouple, "sad")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.ID, "hist_"))
	assert.Equal(t, "Triste", entry.Label)
	assert.Equal(t, "😢", entry.Icon)

	history, err := snapshot.History(db, testCouple)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordMoodRejectsUnknownEmotion(t *testing.T) {
	g, _, pub := newTestGateway(t)

	_, err := g.RecordMood(testCouple, "furious")
	assert.ErrorIs(t, err, ErrUnknownEmotion)
	assert.Empty(t, pub.changes)
}

func TestRecordChatUpsertsWholeEntry(t *testing.T) {
	g, db, _ := newTestGateway(t)

	entry := model.ChatEntry{
		ID:      "chat_1000",
		Emotion: "Triste",
		Messages: model.MessageList{
			{ID: "1", Text: "oi", Sender: model.SenderUser, Timestamp: 1},
		},
		Timestamp: 1000,
	}
	_, err := g.RecordChat(testCouple, entry)
	require.NoError(t, err)

	entry.Messages = append(entry.Messages, model.Message{ID: "2", Text: "estou aqui", Sender: model.SenderPartner, Timestamp: 2})
	entry.Timestamp = 2000
	_, err = g.RecordChat(testCouple, entry)
	require.NoError(t, err)

	chats, err := snapshot.Chats(db, testCouple)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Len(t, chats[0].Messages, 2)
	assert.EqualValues(t, 2000, chats[0].Timestamp)
}

func TestAppendChatMessage(t *testing.T) {
	g, db, _ := newTestGateway(t)

	_, err := g.RecordChat(testCouple, model.ChatEntry{
		ID:      "chat_1000",
		Emotion: "Feliz",
		Messages: model.MessageList{
			{ID: "1", Text: "novidade!", Sender: model.SenderUser, Timestamp: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, g.AppendChatMessage(testCouple, "chat_1000", model.Message{
		ID: "2", Text: "me conta tudo", Sender: model.SenderPartner, Timestamp: 2,
	}))

	chats, err := snapshot.Chats(db, testCouple)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	require.Len(t, chats[0].Messages, 2)
	assert.Equal(t, model.SenderPartner, chats[0].Messages[1].Sender)
}

func TestClearChatsAndHistory(t *testing.T) {
	g, db, _ := newTestGateway(t)

	_, err := g.RecordChat(testCouple, model.ChatEntry{ID: "chat_1"})
	require.NoError(t, err)
	_, err = g.RecordChat(testCouple, model.ChatEntry{ID: "chat_2"})
	require.NoError(t, err)
	_, err = g.RecordMood(testCouple, "happy")
	require.NoError(t, err)

	require.NoError(t, g.ClearChats(testCouple))
	require.NoError(t, g.ClearHistory(testCouple))

	chats, err := snapshot.Chats(db, testCouple)
	require.NoError(t, err)
	history, err := snapshot.History(db, testCouple)
	require.NoError(t, err)
	assert.Empty(t, chats)
	assert.Empty(t, history)
}

func TestOperationsAreNoOpsWithoutCoupleID(t *testing.T) {
	g, db, pub := newTestGateway(t)

	photo, err := g.AddPhoto("", "data:image/png;base64,aGVsbG8=", "")
	assert.NoError(t, err)
	assert.Nil(t, photo)
	assert.NoError(t, g.TrashPhoto("", "photo_1"))
	assert.NoError(t, g.EmptyTrash(""))
	assert.NoError(t, g.ToggleFavorite("", "texto", ""))
	chat, err := g.RecordChat("", model.ChatEntry{})
	assert.NoError(t, err)
	assert.Nil(t, chat)
	_, err = g.RecordMood("", "sad")
	assert.NoError(t, err)
	settings, err := g.UpdateSettings("", model.SettingsPatch{})
	assert.NoError(t, err)
	assert.Nil(t, settings)

	var photos int64
	require.NoError(t, db.Model(&model.Photo{}).Count(&photos).Error)
	assert.EqualValues(t, 0, photos)
	assert.Empty(t, pub.changes)
}

func TestMutationsAnnounceChangedCollections(t *testing.T) {
	g, _, pub := newTestGateway(t)
	photo := addTestPhoto(t, g)

	require.NoError(t, g.TrashPhoto(testCouple, photo.ID))

	assert.Equal(t, []string{
		model.CollectionPhotos,
		model.CollectionPhotos,
		model.CollectionTrash,
	}, pub.collections())
	for _, c := range pub.changes {
		assert.Equal(t, testCouple, c.couple)
	}
}
