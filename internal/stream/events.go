package stream

import (
	"encoding/json"
	"time"
)

const (
	// ProfileUpdatedTopic carries a ProfileUpdated event whenever a user's profile
	// changes, whether saved through this gateway or changed by the backend
	// (for example when a BVN is verified).
	ProfileUpdatedTopic = "profile.updated"
)

type ProfileUpdated struct {
	UserID     string    `json:"userId"`
	Section    string    `json:"section"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e ProfileUpdated) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeProfileUpdated(value []byte) (ProfileUpdated, error) {
	var event ProfileUpdated
	err := json.Unmarshal(value, &event)
	return event, err
}
