// Package notify implements broadcast-style notification fan-out: one
// persisted notification row per eligible user for platform-wide events
// such as a new job or event posting.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

// Store is the slice of persistence the fan-out needs.
type Store interface {
	ListNonAdminUserIDs(ctx context.Context) ([]int64, error)
	InsertNotification(ctx context.Context, n *store.Notification) error
}

// Service writes notifications for every eligible user.
type Service struct {
	store Store
	log   *zerolog.Logger
}

// New creates a new notification fan-out service.
func New(st Store, logger *zerolog.Logger) *Service {
	return &Service{
		store: st,
		log:   logger,
	}
}

// CreateGlobalNotification inserts one notification row per non-admin user.
// Inserts are issued concurrently with no transaction spanning them; a
// failed insert does not affect the others. Failures are logged, never
// surfaced — callers fire and forget.
func (s *Service) CreateGlobalNotification(ctx context.Context, message, link string) {
	ids, err := s.store.ListNonAdminUserIDs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list notification recipients")
		return
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			n := &store.Notification{
				UserID:  userID,
				Message: message,
				Link:    link,
			}
			if err := s.store.InsertNotification(ctx, n); err != nil {
				s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to insert notification")
			}
		}(id)
	}
	wg.Wait()
}
