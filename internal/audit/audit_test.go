package audit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []interface{}
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.CommandTag("INSERT 0 1"), f.err
}

func TestEventLifecycle(t *testing.T) {
	e := NewEvent("hash", "req-1")
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "hash", e.Tool)
	assert.Equal(t, "req-1", e.RequestID)

	time.Sleep(2 * time.Millisecond)
	done := e.Finish(OutcomeInvalid)
	assert.Equal(t, OutcomeInvalid, done.Outcome)
	assert.GreaterOrEqual(t, done.Duration, 2*time.Millisecond)
	assert.Empty(t, e.Outcome, "Finish returns a copy")
}

func TestPostgresRecorder(t *testing.T) {
	db := &fakeExecer{}
	rec, err := NewPostgresRecorder(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.True(t, strings.HasPrefix(db.calls[0].sql, "CREATE TABLE IF NOT EXISTS tool_events"))

	e := NewEvent("qr", "req-2")
	e.InputBytes = 19
	e.OutputBytes = 512
	e = e.Finish(OutcomeOK)

	require.NoError(t, rec.Record(context.Background(), e))
	require.Len(t, db.calls, 2)
	insert := db.calls[1]
	assert.Equal(t, insertEventSQL, insert.sql)
	require.Len(t, insert.args, 8)
	assert.Equal(t, e.ID, insert.args[0])
	assert.Equal(t, "qr", insert.args[2])
	assert.Equal(t, "ok", insert.args[3])
	assert.Equal(t, int64(19), insert.args[4])
	assert.Equal(t, int64(512), insert.args[5])
}

func TestPostgresRecorderErrors(t *testing.T) {
	db := &fakeExecer{err: errors.New("connection reset")}
	_, err := NewPostgresRecorder(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	rec := &PostgresRecorder{DB: db}
	err = rec.Record(context.Background(), NewEvent("hash", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool event")
}

func TestNopAndLog(t *testing.T) {
	var r Recorder = Nop{}
	assert.NoError(t, r.Record(context.Background(), NewEvent("x", "")))
	r = Log{}
	assert.NoError(t, r.Record(context.Background(), NewEvent("x", "").Finish(OutcomeOK)))
}
