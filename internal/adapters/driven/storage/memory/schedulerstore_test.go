package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

func TestSchedulerStore_SaveAndGetTask(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()

	missing, err := store.GetTask(ctx, domain.TaskIDCatalogWarm)
	require.NoError(t, err)
	assert.Nil(t, missing)

	task := &domain.ScheduledTask{ID: domain.TaskIDCatalogWarm, Name: "Catalog Warm-up", Interval: time.Minute, Enabled: true}
	require.NoError(t, store.SaveTask(ctx, task))

	task.Name = "mutated after save"
	got, err := store.GetTask(ctx, domain.TaskIDCatalogWarm)
	require.NoError(t, err)
	assert.Equal(t, "Catalog Warm-up", got.Name)

	assert.ErrorIs(t, store.SaveTask(ctx, nil), domain.ErrInvalidInput)
}

func TestSchedulerStore_ListTasksSorted(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{ID: id}))
	}

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "c", tasks[2].ID)
}

func TestSchedulerStore_HistoryAndPrune(t *testing.T) {
	store := NewSchedulerStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{
			TaskID:         "warm",
			StartedAt:      base.Add(time.Duration(i) * time.Minute),
			ItemsProcessed: i,
		}))
	}
	require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{TaskID: "other", StartedAt: base}))
	assert.ErrorIs(t, store.RecordResult(ctx, nil), domain.ErrInvalidInput)

	history, err := store.GetTaskHistory(ctx, "warm", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 4, history[0].ItemsProcessed)
	assert.Equal(t, 3, history[1].ItemsProcessed)

	require.NoError(t, store.PruneHistory(ctx, 3))

	history, err = store.GetTaskHistory(ctx, "warm", 100)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 4, history[0].ItemsProcessed)
	assert.Equal(t, 2, history[2].ItemsProcessed)

	other, err := store.GetTaskHistory(ctx, "other", 100)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
