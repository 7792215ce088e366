package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Message is one direct message between two users. There is no
// Conversation row: a conversation is the set of messages whose
// {SenderID, ReceiverID} match an unordered pair. Messages are
// immutable once stored; CreatedAt is the ordering key.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"_id"`
	SenderID   uuid.UUID `bun:",notnull,type:uuid" json:"senderId"`
	ReceiverID uuid.UUID `bun:",notnull,type:uuid" json:"receiverId"`

	Text  string `bun:",nullzero" json:"text"`
	Image string `bun:",nullzero" json:"image"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
