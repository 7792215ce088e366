package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"whisp/apperrors"
	"whisp/models"

	"github.com/google/uuid"
)

// Memory is an in-process Store with the same contract as Postgres.
// Used by tests and local experiments; safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]models.User
	messages []models.Message
	seq      int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{users: make(map[uuid.UUID]models.User)}
}

// now yields strictly increasing timestamps so ordering stays stable
// even when inserts land within the same clock tick.
func (s *Memory) now() time.Time {
	s.seq++
	return time.Now().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

func (s *Memory) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrUserExists
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID] = *user
	return nil
}

func (s *Memory) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Memory) ListUsersExcept(_ context.Context, id uuid.UUID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Memory) UpdateProfilePic(_ context.Context, id uuid.UUID, url string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.ProfilePic = url
	u.UpdatedAt = s.now()
	s.users[id] = u
	return &u, nil
}

func (s *Memory) UserAvatarURLs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var urls []string
	for _, u := range s.users {
		if u.ProfilePic != "" {
			urls = append(urls, u.ProfilePic)
		}
	}
	return urls, nil
}

func (s *Memory) CreateMessage(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	now := s.now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	s.messages = append(s.messages, *msg)
	return nil
}

func samePair(m models.Message, a, b uuid.UUID) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

func (s *Memory) Conversation(_ context.Context, userA, userB uuid.UUID, limit int, beforeID uuid.UUID) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Message
	for _, m := range s.messages {
		if samePair(m, userA, userB) {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if beforeID != uuid.Nil {
		cut := -1
		for i, m := range all {
			if m.ID == beforeID {
				cut = i
				break
			}
		}
		if cut < 0 {
			return nil, apperrors.InvalidArg("Unknown cursor")
		}
		all = all[:cut]
	}

	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *Memory) MessageImageURLs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var urls []string
	for _, m := range s.messages {
		if m.Image != "" {
			urls = append(urls, m.Image)
		}
	}
	return urls, nil
}
