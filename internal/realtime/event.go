package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
)

type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

const (
	ChannelCharacters = "characters"
	ChannelSessions   = "sessions"
)

// Event is one broadcast mutation. Payload is the entity as JSON; delete
// events need only carry its id.
type Event struct {
	GameSpaceID uuid.UUID       `json:"game_space_id"`
	Channel     string          `json:"channel"`
	Operation   Operation       `json:"operation"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
}

// Topic names the pub/sub channel for one game space.
func Topic(gameSpaceID uuid.UUID, channel string) string {
	return fmt.Sprintf("game_space:%s:%s", gameSpaceID, channel)
}

func NewEvent(gameSpaceID uuid.UUID, channel string, op Operation, payload interface{}) (Event, error) {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", channel, err)
	}
	return Event{GameSpaceID: gameSpaceID, Channel: channel, Operation: op, Payload: raw}, nil
}

func Decode[T any](ev Event) (T, error) {
	var out T
	if err := sonic.Unmarshal(ev.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", ev.Channel, err)
	}
	return out, nil
}

// Apply folds one event into a local collection: insert appends, update
// replaces the entity with the same id, delete removes it. Events are
// applied in arrival order; the last one wins.
func Apply[T model.Identifiable](items []T, op Operation, item T) []T {
	id := item.GetID()
	idx := -1
	for i := range items {
		if items[i].GetID() == id {
			idx = i
			break
		}
	}

	switch op {
	case OpInsert:
		if idx >= 0 {
			items[idx] = item
			return items
		}
		return append(items, item)
	case OpUpdate:
		if idx >= 0 {
			items[idx] = item
		}
		return items
	case OpDelete:
		if idx >= 0 {
			return append(items[:idx], items[idx+1:]...)
		}
		return items
	}
	return items
}
