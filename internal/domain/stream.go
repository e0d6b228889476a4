package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamPickupAssign = "stream:pickup:assign"
)

// PickupAssignEvent - заявка осталась без машины, нужно повторить подбор
type PickupAssignEvent struct {
	PickupID uuid.UUID `json:"pickup_id"`
	Attempt  int       `json:"attempt"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
