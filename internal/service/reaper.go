package service

import (
	"context"
	"time"

	"myblog/internal/logger"
	"myblog/internal/repository"
)

// ReaperService purges expired session rows in the background. Uploaded files
// orphaned by requests that never reached a terminal state are deliberately
// NOT reaped here; that gap is owned by an external process.
type ReaperService struct {
	sessions repository.Sessions
	log      *logger.Logger
}

func NewReaperService(sessions repository.Sessions, log *logger.Logger) *ReaperService {
	return &ReaperService{sessions: sessions, log: log}
}

var _ Maintenance = (*ReaperService)(nil)

// Run ticks at the given interval until ctx is canceled.
func (s *ReaperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.sessions.DeleteExpired(ctx, now.UTC())
			if err != nil {
				if s.log != nil {
					s.log.Warnw("session_reap_failed", "err", err)
				}
				continue
			}
			if n > 0 && s.log != nil {
				s.log.Infow("expired_sessions_purged", "count", n)
			}
		}
	}
}
