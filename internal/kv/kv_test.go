package kv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStorageSuite checks the behaviour every backend shares.
func runStorageSuite(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing keys are omitted", func(t *testing.T) {
		got, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("set then get", func(t *testing.T) {
		err := s.Set(ctx, map[string]json.RawMessage{
			"tasks": json.RawMessage(`{"tasks":[{"text":"a"}]}`),
			"other": json.RawMessage(`1`),
		})
		require.NoError(t, err)

		got, err := s.Get(ctx, "tasks", "other", "absent")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.JSONEq(t, `{"tasks":[{"text":"a"}]}`, string(got["tasks"]))
		assert.JSONEq(t, `1`, string(got["other"]))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, map[string]json.RawMessage{"other": json.RawMessage(`2`)}))
		got, err := s.Get(ctx, "other")
		require.NoError(t, err)
		assert.JSONEq(t, `2`, string(got["other"]))
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "other", "never-set"))
		got, err := s.Get(ctx, "other", "tasks")
		require.NoError(t, err)
		assert.NotContains(t, got, "other")
		assert.Contains(t, got, "tasks")
	})

	t.Run("rejects empty keys", func(t *testing.T) {
		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, s.Remove(ctx, ""), ErrEmptyKey)
		assert.ErrorIs(t, s.Set(ctx, map[string]json.RawMessage{"": json.RawMessage(`1`)}), ErrEmptyKey)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		err := s.Set(ctx, map[string]json.RawMessage{"bad": json.RawMessage(`{`)})
		assert.Error(t, err)
	})
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	runStorageSuite(t, s)
}

func TestMemory_GetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{"k": json.RawMessage(`"v"`)}))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got["k"][1] = 'X'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v"`, string(again["k"]))
}

func TestFile(t *testing.T) {
	s, err := NewFile(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)
	defer s.Close()
	runStorageSuite(t, s)
}

func TestFile_SharedBetweenInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	a, err := NewFile(path)
	require.NoError(t, err)
	b, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, map[string]json.RawMessage{"tasks": json.RawMessage(`[]`)}))
	got, err := b.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got["tasks"]))
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	s, err := NewFile(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "tasks")
	assert.Error(t, err)
}

func TestNewFile_EmptyPath(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "taskpop.db"))
	require.NoError(t, err)
	defer s.Close()
	runStorageSuite(t, s)
}

// Integration-style test: runs only if TASKPOP_TEST_REDIS_ADDR is set.
func TestRedis(t *testing.T) {
	addr := os.Getenv("TASKPOP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TASKPOP_TEST_REDIS_ADDR not set; skipping integration test")
	}
	s, err := DialRedis(context.Background(), addr, "", 0, "test-"+uuid.NewString())
	require.NoError(t, err)
	defer s.Close()
	runStorageSuite(t, s)
}

func TestRedis_NamespaceKey(t *testing.T) {
	r := NewRedis(nil, "")
	assert.Equal(t, "taskpop:default:tasks", r.namespaceKey("tasks"))
	assert.Equal(t, "tasks", r.stripNamespace("taskpop:default:tasks"))
}

// Integration-style test: runs only if TASKPOP_TEST_POSTGRES_DSN is set.
func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TASKPOP_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TASKPOP_TEST_POSTGRES_DSN not set; skipping integration test")
	}
	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Remove(ctx, "tasks", "other", "bad"))
	runStorageSuite(t, s)
}
