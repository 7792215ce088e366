package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"whisp/apperrors"
	"whisp/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

// Postgres implements Store on top of bun.
type Postgres struct {
	db *bun.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *bun.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.ErrUserExists
		}
		return err
	}
	return nil
}

func (s *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("u.email = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Postgres) ListUsersExcept(ctx context.Context, id uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.NewSelect().
		Model(&users).
		Where("u.id != ?", id).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Postgres) UpdateProfilePic(ctx context.Context, id uuid.UUID, url string) (*models.User, error) {
	res, err := s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("profile_pic = ?", url).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetUserByID(ctx, id)
}

func (s *Postgres) UserAvatarURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Column("profile_pic").
		Where("profile_pic != ''").
		Scan(ctx, &urls)
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *Postgres) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	now := time.Now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	_, err := s.db.NewInsert().Model(msg).Exec(ctx)
	return err
}

func (s *Postgres) Conversation(ctx context.Context, userA, userB uuid.UUID, limit int, beforeID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message

	q := s.db.NewSelect().
		Model(&msgs).
		Where("(m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)",
			userA, userB, userB, userA)

	if beforeID != uuid.Nil {
		cursor := new(models.Message)
		err := s.db.NewSelect().Model(cursor).Where("m.id = ?", beforeID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.InvalidArg("Unknown cursor")
		}
		if err != nil {
			return nil, err
		}
		q = q.Where("(m.created_at, m.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	if limit > 0 {
		// Page backward from the newest, then restore ascending order.
		err := q.Order("created_at DESC", "id DESC").Limit(limit).Scan(ctx)
		if err != nil {
			return nil, err
		}
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
		return msgs, nil
	}

	if err := q.Order("created_at ASC", "id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Postgres) MessageImageURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := s.db.NewSelect().
		Model((*models.Message)(nil)).
		Column("image").
		Where("image IS NOT NULL AND image != ''").
		Scan(ctx, &urls)
	if err != nil {
		return nil, err
	}
	return urls, nil
}
