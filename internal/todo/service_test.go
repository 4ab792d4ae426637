package todo_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpop/internal/kv"
	"taskpop/internal/priority"
	"taskpop/internal/service"
	"taskpop/internal/store"
	"taskpop/internal/testutil"
	"taskpop/internal/todo"
)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newService(t *testing.T) (*todo.Service, *testutil.FakeStore, *todo.RecordingView) {
	t.Helper()
	fs := testutil.NewFakeStore()
	view := &todo.RecordingView{}
	svc := todo.New(fs, todo.WithView(view), todo.WithIDGenerator(sequentialIDs()))
	return svc, fs, view
}

func TestAdd_AppendsOpenTask(t *testing.T) {
	svc, fs, view := newService(t)
	ctx := context.Background()

	task, err := svc.Add(ctx, "  Buy milk  ", "5")
	require.NoError(t, err)

	assert.Equal(t, service.Task{ID: "t1", Text: "Buy milk", Priority: "5"}, task)
	assert.Equal(t, service.TaskList{task}, fs.Tasks())
	assert.Equal(t, 1, view.Appends)
	assert.Equal(t, 0, view.Resets)
	assert.Equal(t, service.TaskList{task}, view.Tasks)
}

func TestAdd_IncreasesLengthByOne(t *testing.T) {
	svc, fs, _ := newService(t)
	ctx := context.Background()

	for i, text := range []string{"a", "b", "a", "c d"} {
		_, err := svc.Add(ctx, text, "")
		require.NoError(t, err)
		tasks := fs.Tasks()
		require.Len(t, tasks, i+1)
		last := tasks[len(tasks)-1]
		assert.False(t, last.Completed)
		assert.Equal(t, priority.Unset, last.Priority)
	}
}

func TestAdd_BlankTextLeavesStateUnchanged(t *testing.T) {
	svc, fs, view := newService(t)
	fs.AddTask("x", "existing", false, "2")

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Add(context.Background(), text, "3")

		var ve *todo.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "text", ve.Field)
		assert.ErrorIs(t, err, todo.ErrEmptyText)
	}
	assert.Len(t, fs.Tasks(), 1)
	assert.Zero(t, fs.Saves)
	assert.Zero(t, view.Appends)
}

func TestAdd_InvalidPriority(t *testing.T) {
	svc, fs, _ := newService(t)

	_, err := svc.Add(context.Background(), "task", "11")

	assert.True(t, todo.IsValidation(err))
	var ve *todo.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "priority", ve.Field)
	assert.Zero(t, fs.Saves)
}

func TestAdd_SaveFailure(t *testing.T) {
	svc, fs, view := newService(t)
	fs.SaveErr = testutil.ErrInjected

	_, err := svc.Add(context.Background(), "task", "1")

	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.Zero(t, view.Appends)
}

func TestToggle_TwiceRestores(t *testing.T) {
	svc, fs, view := newService(t)
	ctx := context.Background()
	fs.AddTask("a", "walk dog", false, "1")

	got, err := svc.Toggle(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.True(t, fs.Tasks()[0].Completed)

	got, err = svc.Toggle(ctx, "a")
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.False(t, fs.Tasks()[0].Completed)
	assert.Equal(t, 2, view.Updates)
	assert.Zero(t, view.Resets)
}

func TestToggle_UnknownID(t *testing.T) {
	svc, fs, _ := newService(t)
	fs.AddTask("a", "x", false, "")

	_, err := svc.Toggle(context.Background(), "nope")

	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Zero(t, fs.Saves)
}

func TestToggleText_FirstMatchOnly(t *testing.T) {
	svc, fs, _ := newService(t)
	fs.AddTask("a", "dup", false, "")
	fs.AddTask("b", "dup", false, "")

	got, err := svc.ToggleText(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	tasks := fs.Tasks()
	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)
}

func TestToggleText_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.ToggleText(context.Background(), "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestClearAll(t *testing.T) {
	svc, fs, view := newService(t)
	ctx := context.Background()
	fs.AddTask("a", "x", false, "")
	fs.AddTask("b", "y", true, "")

	require.NoError(t, svc.ClearAll(ctx))

	assert.False(t, fs.Present())
	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Empty(t, view.Tasks)
	assert.Equal(t, 1, fs.Clears)
}

func TestClearCompleted_KeepsOpenInOrder(t *testing.T) {
	svc, fs, view := newService(t)
	fs.AddTask("a", "one", false, "1")
	fs.AddTask("b", "two", true, "2")
	fs.AddTask("c", "three", false, "3")
	fs.AddTask("d", "four", true, "4")
	fs.AddTask("e", "five", false, "")

	removed, err := svc.ClearCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var ids []string
	for _, task := range fs.Tasks() {
		assert.False(t, task.Completed)
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids)
	assert.Equal(t, fs.Tasks(), view.Tasks)
	assert.Equal(t, 1, view.Resets)
}

func TestClearCompleted_LoadFailure(t *testing.T) {
	svc, fs, _ := newService(t)
	fs.LoadErr = errors.New("offline")

	_, err := svc.ClearCompleted(context.Background())
	assert.EqualError(t, err, "offline")
	assert.Zero(t, fs.Saves)
}

func TestList_ResetsView(t *testing.T) {
	svc, fs, view := newService(t)
	fs.AddTask("a", "x", false, "")

	tasks, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, view.Resets)
	assert.Equal(t, tasks, view.Tasks)
}

func TestReplace(t *testing.T) {
	svc, fs, view := newService(t)
	fs.AddTask("a", "old", false, "")

	next := service.TaskList{{ID: "z", Text: "imported", Priority: "9"}}
	require.NoError(t, svc.Replace(context.Background(), next))

	assert.Equal(t, next, fs.Tasks())
	assert.Equal(t, next, view.Tasks)
}

func TestEndToEnd_BuyMilk(t *testing.T) {
	ctx := context.Background()
	svc := todo.New(store.NewKV(kv.NewMemory()))

	task, err := svc.Add(ctx, "Buy milk", "5")
	require.NoError(t, err)

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, priority.Priority("5"), tasks[0].Priority)

	toggled, err := svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	removed, err := svc.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	tasks, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestToggle_LegacyRecordWithoutID(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, map[string]json.RawMessage{
		service.TasksKey: json.RawMessage(`[{"text":"Buy milk","completed":false,"priority":"5"}]`),
	}))
	svc := todo.New(store.NewKV(mem))

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	toggled, err := svc.Toggle(ctx, listed[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, listed[0].ID, toggled.ID)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	svc, fs, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Add(ctx, fmt.Sprintf("task %d", i), "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, fs.Tasks(), 20)
}
