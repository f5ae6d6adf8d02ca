package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	taskColumns   = `id, name, interval_seconds, last_run, next_run, last_error, last_success, enabled`
	resultColumns = `task_id, started_at, ended_at, success, error, items_processed`
)

// schedulerStore keeps the catalog warm-up task and its run history.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// GetTask returns nil and no error when the task has never been saved.
func (s *schedulerStore) GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error) {
	tasks, err := s.queryTasks(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks WHERE id = ?`, taskID)
	if err != nil || len(tasks) == 0 {
		return nil, err
	}
	return &tasks[0], nil
}

func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks ORDER BY id`)
}

// SaveTask upserts by ID.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			interval_seconds = excluded.interval_seconds,
			last_run = excluded.last_run,
			next_run = excluded.next_run,
			last_error = excluded.last_error,
			last_success = excluded.last_success,
			enabled = excluded.enabled
	`, task.ID, task.Name, int64(task.Interval/time.Second),
		nullTime(task.LastRun), nullTime(task.NextRun),
		nullString(task.LastError), nullTime(task.LastSuccess),
		boolToInt(task.Enabled))
	if err != nil {
		return fmt.Errorf("saving scheduled task %s: %w", task.ID, err)
	}
	return nil
}

func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx,
		`INSERT INTO task_results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		result.TaskID, nullTime(result.StartedAt), nullTime(result.EndedAt),
		boolToInt(result.Success), nullString(result.Error), result.ItemsProcessed)
	if err != nil {
		return fmt.Errorf("recording %s result: %w", result.TaskID, err)
	}
	return nil
}

// GetTaskHistory returns the newest results first.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+resultColumns+` FROM task_results
		WHERE task_id = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s history: %w", taskID, err)
	}
	defer rows.Close()

	var results []domain.TaskResult
	for rows.Next() {
		var (
			r          domain.TaskResult
			started    nullTime
			ended      nullTime
			success    int
			errMessage sql.NullString
		)
		if err := rows.Scan(&r.TaskID, &started, &ended, &success, &errMessage, &r.ItemsProcessed); err != nil {
			return nil, fmt.Errorf("scanning task result: %w", err)
		}
		r.StartedAt = time.Time(started)
		r.EndedAt = time.Time(ended)
		r.Success = success == 1
		r.Error = errMessage.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s history: %w", taskID, err)
	}
	return results, nil
}

// PruneHistory keeps the newest keep results of every task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM task_results
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY started_at DESC, id DESC) AS rn
				FROM task_results
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning task history: %w", err)
	}
	return nil
}

func (s *schedulerStore) queryTasks(ctx context.Context, query string, args ...any) ([]domain.ScheduledTask, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduledTask
	for rows.Next() {
		var (
			t           domain.ScheduledTask
			interval    int64
			lastRun     nullTime
			nextRun     nullTime
			lastSuccess nullTime
			lastError   sql.NullString
			enabled     int
		)
		if err := rows.Scan(&t.ID, &t.Name, &interval, &lastRun, &nextRun, &lastError, &lastSuccess, &enabled); err != nil {
			return nil, fmt.Errorf("scanning scheduled task: %w", err)
		}
		t.Interval = time.Duration(interval) * time.Second
		t.LastRun = time.Time(lastRun)
		t.NextRun = time.Time(nextRun)
		t.LastSuccess = time.Time(lastSuccess)
		t.LastError = lastError.String
		t.Enabled = enabled == 1
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled tasks: %w", err)
	}
	return tasks, nil
}

// nullTime stores the zero time as NULL and everything else as UTC text
// in timeLayout. Unparsable text scans as the zero time.
type nullTime time.Time

func (t nullTime) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt.UTC().Format(timeLayout), nil
}

func (t *nullTime) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
		*t = nullTime{}
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	case time.Time:
		*t = nullTime(v)
		return nil
	default:
		return errors.New("nullTime: unsupported column type")
	}
	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		*t = nullTime{}
		return nil
	}
	*t = nullTime(parsed)
	return nil
}
