package notify

import (
	"encoding/json"
	"time"
)

const (
	KindDonation  = "donation"
	KindVolunteer = "volunteer"
	KindCause     = "cause"
)

// Event is the wire envelope published on Channel(UserID).
type Event struct {
	Type   string          `json:"type"`
	UserID int64           `json:"user_id"`
	Record json.RawMessage `json:"record"`
	At     time.Time       `json:"at"`
}

func encodeEvent(kind string, userID int64, record any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: kind, UserID: userID, Record: raw, At: at.UTC()})
}
