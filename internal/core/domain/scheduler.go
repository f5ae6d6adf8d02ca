package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// Due reports whether an enabled task should run at now. A task that has
// never been scheduled is always due.
func (t *ScheduledTask) Due(now time.Time) bool {
	if !t.Enabled {
		return false
	}
	return t.NextRun.IsZero() || !t.NextRun.After(now)
}

// Complete folds a finished run into the task and schedules the next one
// an Interval after the run ended.
func (t *ScheduledTask) Complete(result *TaskResult) {
	if result.Success {
		t.LastError = ""
		t.LastSuccess = result.EndedAt
	} else {
		t.LastError = result.Error
	}
	t.LastRun = result.StartedAt
	t.NextRun = result.EndedAt.Add(t.Interval)
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is a count of items handled (variations in the warmed snapshot).
	ItemsProcessed int
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// Tick is how often the scheduler checks for due tasks.
	Tick time.Duration

	// TaskConfigs holds per-task configuration.
	TaskConfigs map[string]TaskConfig
}

// TaskConfig holds configuration for a single task.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration
}

// GetTaskConfig returns the configuration for a specific task.
// Returns a zero TaskConfig if the task is not configured.
func (c *SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	if c.TaskConfigs == nil {
		return TaskConfig{}
	}
	return c.TaskConfigs[taskID]
}

// DefaultSchedulerConfig returns the default warm-up schedule.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		Tick:    time.Minute,
		TaskConfigs: map[string]TaskConfig{
			TaskIDCatalogWarm: {
				Enabled:  true,
				Interval: 4 * time.Minute,
			},
		},
	}
}

// TaskIDCatalogWarm keeps the catalog cache warm ahead of real callers.
const TaskIDCatalogWarm = "catalog-warm"
