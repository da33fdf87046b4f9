package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmflow/flow/internal/db/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCheckSprintDates(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantMsg string
	}{
		{
			name:  "two week sprint",
			start: date(2024, time.May, 1),
			end:   date(2024, time.May, 14),
		},
		{
			name:  "single day sprint",
			start: date(2024, time.May, 1),
			end:   date(2024, time.May, 1),
		},
		{
			name:  "exactly 28 days",
			start: date(2024, time.May, 1),
			end:   date(2024, time.May, 28),
		},
		{
			name:    "end before start",
			start:   date(2024, time.May, 14),
			end:     date(2024, time.May, 1),
			wantMsg: MsgSprintDateOrder,
		},
		{
			name:    "29 days",
			start:   date(2024, time.May, 1),
			end:     date(2024, time.May, 29),
			wantMsg: MsgSprintDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sprint := &models.Sprint{StartDate: tt.start, EndDate: tt.end}
			err := CheckSprintDates(sprint)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCheckSprintManualState(t *testing.T) {
	today := date(2024, time.June, 15)
	past := models.Sprint{
		StartDate: date(2024, time.May, 1),
		EndDate:   date(2024, time.May, 14),
		StateMode: models.SprintStateModeManual,
	}

	for _, state := range []models.SprintState{models.SprintStatePlanned, models.SprintStateActive} {
		sprint := past
		sprint.StateManual = state
		err := CheckSprintManualState(&sprint, today)
		require.Error(t, err, "state %s", state)
		assert.Equal(t, MsgSprintPastManual, err.Error())
	}

	doneSprint := past
	doneSprint.StateManual = models.SprintStateDone
	assert.NoError(t, CheckSprintManualState(&doneSprint, today))

	// End date today counts as not past
	boundary := past
	boundary.EndDate = today
	boundary.StateManual = models.SprintStateActive
	assert.NoError(t, CheckSprintManualState(&boundary, today))

	// Auto mode is never caught by this check
	auto := past
	auto.StateMode = models.SprintStateModeAuto
	auto.StateManual = models.SprintStateActive
	assert.NoError(t, CheckSprintManualState(&auto, today))

	// A start date in the past alone does not trigger the check
	straddling := models.Sprint{
		StartDate:   date(2024, time.June, 10),
		EndDate:     date(2024, time.June, 20),
		StateMode:   models.SprintStateModeManual,
		StateManual: models.SprintStateActive,
	}
	assert.NoError(t, CheckSprintManualState(&straddling, today))
}

func TestCheckSingleActiveSprint(t *testing.T) {
	active := &models.Sprint{State: models.SprintStateActive}

	assert.NoError(t, CheckSingleActiveSprint(active, 0))

	err := CheckSingleActiveSprint(active, 1)
	require.Error(t, err)
	assert.Equal(t, MsgSprintSingleActive, err.Error())

	planned := &models.Sprint{State: models.SprintStatePlanned}
	assert.NoError(t, CheckSingleActiveSprint(planned, 3))
}

func TestCheckSprintTasksProject(t *testing.T) {
	sprint := &models.Sprint{ProjectID: 1}
	matching := []models.Task{{ProjectID: 1}, {ProjectID: 1}}
	assert.NoError(t, CheckSprintTasksProject(sprint, matching))

	mixed := []models.Task{{ProjectID: 1}, {ProjectID: 2}}
	err := CheckSprintTasksProject(sprint, mixed)
	require.Error(t, err)
	assert.Equal(t, MsgSprintTasksProject, err.Error())
}

func TestCheckSprintProjectChange(t *testing.T) {
	planned := &models.Sprint{State: models.SprintStatePlanned}
	assert.NoError(t, CheckSprintProjectChange(planned, 0))

	err := CheckSprintProjectChange(planned, 2)
	require.Error(t, err)
	assert.Equal(t, MsgSprintProjectHasTask, err.Error())

	for _, state := range []models.SprintState{models.SprintStateActive, models.SprintStateDone} {
		sprint := &models.Sprint{State: state}
		err := CheckSprintProjectChange(sprint, 0)
		require.Error(t, err, "state %s", state)
		assert.Equal(t, MsgSprintProjectState, err.Error())
	}

	// The task guard takes precedence over the state guard
	activeWithTasks := &models.Sprint{State: models.SprintStateActive}
	err = CheckSprintProjectChange(activeWithTasks, 1)
	require.Error(t, err)
	assert.Equal(t, MsgSprintProjectHasTask, err.Error())
}

func TestCheckTaskSelection(t *testing.T) {
	sprint := &models.Sprint{ProjectID: 1}
	assert.NoError(t, CheckTaskSelection(sprint, []models.Task{{ProjectID: 1}}))
	assert.NoError(t, CheckTaskSelection(sprint, nil))

	err := CheckTaskSelection(sprint, []models.Task{{ProjectID: 2}})
	require.Error(t, err)
	assert.Equal(t, MsgSelectionProject, err.Error())

	noProject := &models.Sprint{}
	err = CheckTaskSelection(noProject, []models.Task{{ProjectID: 1}})
	require.Error(t, err)
	assert.Equal(t, MsgSelectionNoProject, err.Error())
}

func TestCheckTaskSprint(t *testing.T) {
	sprint := &models.Sprint{
		ProjectID: 1,
		StartDate: date(2024, time.July, 1),
		EndDate:   date(2024, time.July, 14),
	}

	inRange := date(2024, time.July, 10)
	onEnd := date(2024, time.July, 14)
	after := date(2024, time.July, 15)

	tests := []struct {
		name    string
		task    models.Task
		wantMsg string
	}{
		{
			name: "matching project no deadline",
			task: models.Task{ProjectID: 1},
		},
		{
			name: "deadline inside sprint",
			task: models.Task{ProjectID: 1, Deadline: &inRange},
		},
		{
			name: "deadline on end date",
			task: models.Task{ProjectID: 1, Deadline: &onEnd},
		},
		{
			name:    "deadline after end date",
			task:    models.Task{ProjectID: 1, Deadline: &after},
			wantMsg: MsgTaskDeadline,
		},
		{
			name:    "project mismatch",
			task:    models.Task{ProjectID: 2},
			wantMsg: MsgTaskSprintProject,
		},
		{
			name:    "project mismatch wins over deadline",
			task:    models.Task{ProjectID: 2, Deadline: &after},
			wantMsg: MsgTaskSprintProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTaskSprint(&tt.task, sprint)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}

	assert.NoError(t, CheckTaskSprint(&models.Task{ProjectID: 2}, nil))
}
