package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExecutor_NoSession(t *testing.T) {
	db, _ := setupTestDB(t)
	assert.Same(t, db, GetExecutor(context.Background(), db))
}

func TestWithSession_ProvidesConnection(t *testing.T) {
	db, _ := setupTestDB(t)
	sm := NewSessionManagerAdapter(db)

	var seen DBTX
	err := sm.WithSession(context.Background(), func(ctx context.Context) error {
		seen = GetExecutor(ctx, db)

		return sm.WithSession(ctx, func(inner context.Context) error {
			assert.Same(t, seen, GetExecutor(inner, db), "nested session must reuse the outer connection")
			return nil
		})
	})
	require.NoError(t, err)
	assert.IsType(t, &sqlx.Conn{}, seen)
}

func TestWithSession_ReleasesOnError(t *testing.T) {
	db, _ := setupTestDB(t)
	sm := NewSessionManagerAdapter(db)
	fnErr := errors.New("insert failed")

	var conn *sqlx.Conn
	err := sm.WithSession(context.Background(), func(ctx context.Context) error {
		conn = GetExecutor(ctx, db).(*sqlx.Conn)
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.Equal(t, 0, db.Stats().InUse)
	assert.Error(t, conn.PingContext(context.Background()), "connection must be closed after the session")
}

func TestWithSession_ReleasesOnPanic(t *testing.T) {
	db, _ := setupTestDB(t)
	sm := NewSessionManagerAdapter(db)

	assert.Panics(t, func() {
		_ = sm.WithSession(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, db.Stats().InUse)
}
