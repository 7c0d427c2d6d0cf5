package router

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"nosdois-service/database"
	"nosdois-service/gateway"
	"nosdois-service/model"
	"nosdois-service/snapshot"
	"nosdois-service/suggest"
	"nosdois-service/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

type PhotoAddInput struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type FavoriteToggleInput struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
}

// decodeArg remarshals a socket.io argument into a typed payload.
func decodeArg(arg interface{}, out interface{}) error {
	raw, err := json.Marshal(arg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func stringArg(args []interface{}, index int) string {
	if index >= len(args) {
		return ""
	}
	value, _ := args[index].(string)
	return value
}

func coupleOf(client *socket.Socket) string {
	claims, ok := client.Data().(*utils.TokenMetadata)
	if !ok || claims == nil {
		return ""
	}
	return claims.Couple
}

func Socket(server *socket.Server, gw *gateway.Gateway, sg *suggest.Client) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Full-state push: one snapshot event per collection, then the
		// settings document.
		client.On("init", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" {
				return
			}

			for _, name := range model.Collections {
				payload, err := snapshot.Collection(database.Postgres, couple, name)
				if err != nil {
					log.Printf("init snapshot %s for %s: %v", name, couple, err)
					continue
				}
				client.Emit("snapshot_"+name, payload)
			}

			settings, err := snapshot.Settings(database.Postgres, couple)
			if err != nil {
				log.Printf("init settings for %s: %v", couple, err)
				return
			}
			client.Emit(model.CollectionSettings, settings)
		})

		client.On("photo_add", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			input := PhotoAddInput{}
			if err := decodeArg(args[0], &input); err != nil {
				log.Printf("photo_add: %v", err)
				return
			}
			if _, err := gw.AddPhoto(couple, input.URL, input.Caption); err != nil {
				log.Printf("photo_add: %v", err)
			}
		})

		client.On("photo_trash", func(args ...interface{}) {
			if err := gw.TrashPhoto(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("photo_trash: %v", err)
			}
		})

		client.On("photo_restore", func(args ...interface{}) {
			if err := gw.RestorePhoto(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("photo_restore: %v", err)
			}
		})

		client.On("photo_delete", func(args ...interface{}) {
			if err := gw.DeletePhoto(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("photo_delete: %v", err)
			}
		})

		client.On("trash_empty", func(args ...interface{}) {
			if err := gw.EmptyTrash(coupleOf(client)); err != nil {
				log.Printf("trash_empty: %v", err)
			}
		})

		client.On("diary_upsert", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			entry := model.DiaryEntry{}
			if err := decodeArg(args[0], &entry); err != nil {
				log.Printf("diary_upsert: %v", err)
				return
			}
			if err := gw.UpsertDiary(couple, entry); err != nil {
				log.Printf("diary_upsert: %v", err)
			}
		})

		client.On("diary_delete", func(args ...interface{}) {
			if err := gw.DeleteDiary(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("diary_delete: %v", err)
			}
		})

		client.On("mood_record", func(args ...interface{}) {
			if _, err := gw.RecordMood(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("mood_record: %v", err)
			}
		})

		client.On("history_delete", func(args ...interface{}) {
			if err := gw.DeleteHistory(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("history_delete: %v", err)
			}
		})

		client.On("history_clear", func(args ...interface{}) {
			if err := gw.ClearHistory(coupleOf(client)); err != nil {
				log.Printf("history_clear: %v", err)
			}
		})

		client.On("chat_record", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			entry := model.ChatEntry{}
			if err := decodeArg(args[0], &entry); err != nil {
				log.Printf("chat_record: %v", err)
				return
			}
			if _, err := gw.RecordChat(couple, entry); err != nil {
				log.Printf("chat_record: %v", err)
			}
		})

		// chat_reply records the user's turn and fetches the partner
		// reply off the interaction path. A late reply is appended to the
		// persisted entry; nobody waits for it.
		client.On("chat_reply", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			entry := model.ChatEntry{}
			if err := decodeArg(args[0], &entry); err != nil {
				log.Printf("chat_reply: %v", err)
				return
			}
			persisted, err := gw.RecordChat(couple, entry)
			if err != nil {
				log.Printf("chat_reply: %v", err)
				return
			}

			lastText := ""
			if len(persisted.Messages) > 0 {
				lastText = persisted.Messages[len(persisted.Messages)-1].Text
			}

			// The reply appends to the id the gateway persisted, which
			// may have been minted there when the payload carried none.
			chatID := persisted.ID
			emotion := persisted.Emotion

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				reply := sg.PartnerReply(ctx, lastText, emotion)
				now := time.Now().UnixMilli()
				message := model.Message{
					ID:        strconv.FormatInt(now, 10),
					Text:      reply,
					Sender:    model.SenderPartner,
					Timestamp: now,
				}
				if err := gw.AppendChatMessage(couple, chatID, message); err != nil {
					log.Printf("chat_reply append: %v", err)
				}
			}()
		})

		client.On("chat_delete", func(args ...interface{}) {
			if err := gw.DeleteChat(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("chat_delete: %v", err)
			}
		})

		client.On("chats_clear", func(args ...interface{}) {
			if err := gw.ClearChats(coupleOf(client)); err != nil {
				log.Printf("chats_clear: %v", err)
			}
		})

		client.On("favorite_toggle", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			input := FavoriteToggleInput{}
			if err := decodeArg(args[0], &input); err != nil {
				log.Printf("favorite_toggle: %v", err)
				return
			}
			if err := gw.ToggleFavorite(couple, input.Text, input.Emotion); err != nil {
				log.Printf("favorite_toggle: %v", err)
			}
		})

		client.On("favorite_delete", func(args ...interface{}) {
			if err := gw.DeleteFavorite(coupleOf(client), stringArg(args, 0)); err != nil {
				log.Printf("favorite_delete: %v", err)
			}
		})

		client.On("settings_update", func(args ...interface{}) {
			couple := coupleOf(client)
			if couple == "" || len(args) == 0 {
				return
			}
			patch := model.SettingsPatch{}
			if err := decodeArg(args[0], &patch); err != nil {
				log.Printf("settings_update: %v", err)
				return
			}
			if _, err := gw.UpdateSettings(couple, patch); err != nil {
				log.Printf("settings_update: %v", err)
			}
		})
	})
}
