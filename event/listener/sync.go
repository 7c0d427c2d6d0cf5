package listener

import (
	"encoding/json"
	"log"

	"nosdois-service/database"
	"nosdois-service/event"
	"nosdois-service/model"
	"nosdois-service/snapshot"
	"nosdois-service/socketio"
)

var (
	SyncChannel = make(chan event.EventChannelData)
)

// Sync consumes collection-changed events and republishes the affected
// collection's full snapshot to the couple's room. A failing rebuild
// leaves the clients' slice stale, nothing more.
func Sync() {
	for data := range SyncChannel {
		syncEvent := event.SyncEvent{}
		if err := json.Unmarshal(data.Data, &syncEvent); err != nil {
			log.Printf("sync listener: bad event payload: %v", err)
			continue
		}
		if syncEvent.Couple == "" {
			continue
		}

		payload, err := snapshot.Collection(database.Postgres, syncEvent.Couple, data.Action)
		if err != nil {
			log.Printf("sync listener: snapshot %s for %s: %v", data.Action, syncEvent.Couple, err)
			continue
		}

		if !data.Out.Send {
			continue
		}

		if data.Action == model.CollectionSettings {
			socketio.Emit(syncEvent.Couple, model.CollectionSettings, payload)
			continue
		}
		socketio.Emit(syncEvent.Couple, "snapshot_"+data.Action, payload)
	}
}
