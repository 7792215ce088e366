// Package store persists users and messages. The postgres
// implementation backs production; the memory implementation backs
// tests and keeps the same contract.
package store

import (
	"context"

	"whisp/models"

	"github.com/google/uuid"
)

// UserStore holds user records. Lookups return (nil, nil) when no
// record matches; callers decide which domain error that means.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsersExcept returns every user but the given one: the
	// conversation index ("who can I message") with no filtering.
	ListUsersExcept(ctx context.Context, id uuid.UUID) ([]models.User, error)

	// UpdateProfilePic persists a new avatar URL and returns the
	// updated record, or (nil, nil) if the user no longer exists.
	UpdateProfilePic(ctx context.Context, id uuid.UUID, url string) (*models.User, error)

	// UserAvatarURLs lists every non-empty avatar URL (janitor).
	UserAvatarURLs(ctx context.Context) ([]string, error)
}

// MessageStore holds the direct-message transcript.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) error

	// Conversation returns messages between the unordered pair
	// {userA, userB} ascending by creation time. limit <= 0 means
	// the full transcript; beforeID != uuid.Nil pages backward from
	// (exclusive of) that message.
	Conversation(ctx context.Context, userA, userB uuid.UUID, limit int, beforeID uuid.UUID) ([]models.Message, error)

	// MessageImageURLs lists every non-empty attachment URL (janitor).
	MessageImageURLs(ctx context.Context) ([]string, error)
}

// Store is the full persistence surface the controllers depend on.
type Store interface {
	UserStore
	MessageStore
}
