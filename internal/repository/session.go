package repository

import (
	"context"
	"fmt"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type contextKey string

// SessionContextKey holds the *sqlx.Conn of the current session.
const SessionContextKey contextKey = "db_session"

// GetExecutor returns the session connection stored in ctx, or db.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if conn, ok := ctx.Value(SessionContextKey).(*sqlx.Conn); ok && conn != nil {
		return conn
	}
	return db
}

// SessionManagerAdapter hands out one pooled connection per session.
type SessionManagerAdapter struct {
	db *sqlx.DB
}

func NewSessionManagerAdapter(db *sqlx.DB) *SessionManagerAdapter {
	return &SessionManagerAdapter{db: db}
}

// WithSession runs fn with a dedicated connection in its context. The
// connection goes back to the pool when fn returns or panics. Nested calls
// reuse the outer session.
func (s *SessionManagerAdapter) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(SessionContextKey).(*sqlx.Conn); ok {
		return fn(ctx)
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire db session: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Get().Warn("Failed to release db session", zap.Error(closeErr))
		}
	}()

	return fn(context.WithValue(ctx, SessionContextKey, conn))
}

var _ domain.SessionManager = (*SessionManagerAdapter)(nil)
