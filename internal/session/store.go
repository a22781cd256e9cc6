// Package session persists authentication session tokens in the relational
// store so sessions survive process restarts.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"commune/internal/middleware"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a persisted authentication session row.
type Session struct {
	Token     string    `gorm:"primaryKey;size:36" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// Store manages session rows in a dedicated sessions table, which it creates
// if absent. A background reaper deletes expired rows until Close is called.
type Store struct {
	db   *gorm.DB
	ttl  time.Duration
	stop chan struct{}
	done chan struct{}
}

const reapInterval = 10 * time.Minute

// NewStore returns a session store backed by db, creating the sessions table
// if it does not exist, and starts the expiry reaper.
func NewStore(db *gorm.DB, ttl time.Duration) (*Store, error) {
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, err
	}

	s := &Store{
		db:   db,
		ttl:  ttl,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.reapLoop()
	return s, nil
}

// Create inserts a new session for the given user and returns it.
func (s *Store) Create(ctx context.Context, userID uint) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by token. Absent or expired sessions yield (nil, nil);
// expired rows are deleted on the way out.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	var sess Session
	err := s.db.WithContext(ctx).First(&sess, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if sess.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error
		return nil, nil
	}

	return &sess, nil
}

// Destroy deletes the session with the given token. Destroying a session
// that does not exist is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error
}

// Reap deletes all expired sessions and returns how many were removed.
func (s *Store) Reap(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&Session{}, "expires_at < ?", time.Now().UTC())
	return res.RowsAffected, res.Error
}

// Close stops the background reaper and waits for it to exit.
func (s *Store) Close() {
	close(s.stop)
	<-s.done
}

func (s *Store) reapLoop() {
	defer close(s.done)
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			n, err := s.Reap(context.Background())
			if err != nil {
				middleware.Logger.Warn("session reap failed", slog.String("error", err.Error()))
			} else if n > 0 {
				middleware.Logger.Info("reaped expired sessions", slog.Int64("count", n))
			}
		}
	}
}
