package amqp

import (
	"encoding/json"
	"time"
)

// Message kinds carried on the sync queue.
const (
	KindRecordSync   = "record.sync"
	KindRecordDelete = "record.delete"
)

// RecordMessage is a lightweight envelope for the sheet-export queue.
// It carries only the record id; the worker fetches the full record
// from the database when handling a sync.
type RecordMessage struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(id int64) *RecordMessage {
	return &RecordMessage{Kind: KindRecordSync, ID: id, Timestamp: time.Now()}
}

func NewRecordDeleteMessage(id int64) *RecordMessage {
	return &RecordMessage{Kind: KindRecordDelete, ID: id, Timestamp: time.Now()}
}

func (m *RecordMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordMessageFromJSON(data []byte) (*RecordMessage, error) {
	var msg RecordMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
