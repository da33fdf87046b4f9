package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for sprint model
const (
	// SprintStateField is the field name for the derived sprint state
	SprintStateField = "state"
	// SprintProjectIDField is the field name for the sprint's project reference
	SprintProjectIDField = "project_id"
)

const (
	// MaxSprintDurationDays is the longest allowed sprint, start and end day inclusive
	MaxSprintDurationDays = 28
	// DefaultSprintDurationDays is the end-date suggestion applied when only a start date is given
	DefaultSprintDurationDays = 14
)

// SprintState represents the lifecycle state of a sprint
type SprintState string

// Sprint state constants
const (
	// SprintStatePlanned indicates the sprint has not started yet
	SprintStatePlanned SprintState = "planned"
	// SprintStateActive indicates the sprint is currently running
	SprintStateActive SprintState = "active"
	// SprintStateDone indicates the sprint has finished
	SprintStateDone SprintState = "done"
)

// String returns the string representation of the sprint state
func (s SprintState) String() string {
	return string(s)
}

// ParseSprintState converts a string to a SprintState type
func ParseSprintState(str string) (SprintState, error) {
	switch str {
	case string(SprintStatePlanned):
		return SprintStatePlanned, nil
	case string(SprintStateActive):
		return SprintStateActive, nil
	case string(SprintStateDone):
		return SprintStateDone, nil
	default:
		return "", fmt.Errorf("invalid sprint state: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for SprintState
func (s *SprintState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	state, err := ParseSprintState(str)
	if err != nil {
		return err
	}

	*s = state
	return nil
}

// SprintStateMode selects whether the sprint state is derived from dates or held manually
type SprintStateMode string

// Sprint state mode constants
const (
	// SprintStateModeAuto derives the state from the current date and the sprint dates
	SprintStateModeAuto SprintStateMode = "auto"
	// SprintStateModeManual holds the state set through an override action
	SprintStateModeManual SprintStateMode = "manual"
)

// String returns the string representation of the sprint state mode
func (m SprintStateMode) String() string {
	return string(m)
}

// ParseSprintStateMode converts a string to a SprintStateMode type
func ParseSprintStateMode(str string) (SprintStateMode, error) {
	switch str {
	case string(SprintStateModeAuto):
		return SprintStateModeAuto, nil
	case string(SprintStateModeManual):
		return SprintStateModeManual, nil
	default:
		return "", fmt.Errorf("invalid sprint state mode: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for SprintStateMode
func (m *SprintStateMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	mode, err := ParseSprintStateMode(str)
	if err != nil {
		return err
	}

	*m = mode
	return nil
}

// Sprint is a time-boxed planning period scoped to one project
type Sprint struct {
	gorm.Model
	ProjectID   uint            `json:"project_id" gorm:"not null; index"`
	Name        string          `json:"name" gorm:"not null; index"`
	StartDate   time.Time       `json:"start_date" gorm:"not null"`
	EndDate     time.Time       `json:"end_date" gorm:"not null"`
	StateMode   SprintStateMode `json:"state_mode" gorm:"not null; default:'auto'"`
	StateManual SprintState     `json:"state_manual" gorm:"not null; default:'planned'"`
	State       SprintState     `json:"state" gorm:"not null; index"`
	Project     *Project        `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Tasks       []Task          `json:"tasks,omitempty" gorm:"foreignKey:SprintID"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}

// DateOf strips the time-of-day component, keeping year, month and day in UTC.
// All sprint date comparisons go through this so that wall-clock times never
// affect state derivation.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationDays returns the sprint length in days, start and end day inclusive
func (s *Sprint) DurationDays() int {
	return int(DateOf(s.EndDate).Sub(DateOf(s.StartDate)).Hours()/24) + 1
}

// ComputeState derives the sprint state for the given day. In manual mode the
// held state is returned unchanged; in auto mode it follows the calendar:
// before the start date the sprint is planned, between start and end date
// inclusive it is active, after the end date it is done. Incomplete dates
// fall back to planned.
func (s *Sprint) ComputeState(today time.Time) SprintState {
	if s.StateMode == SprintStateModeManual {
		return s.StateManual
	}

	day := DateOf(today)
	start := DateOf(s.StartDate)
	end := DateOf(s.EndDate)

	switch {
	case !s.StartDate.IsZero() && day.Before(start):
		return SprintStatePlanned
	case !s.StartDate.IsZero() && !s.EndDate.IsZero() && !day.Before(start) && !day.After(end):
		return SprintStateActive
	case !s.EndDate.IsZero() && day.After(end):
		return SprintStateDone
	default:
		return SprintStatePlanned
	}
}

// RecomputeState refreshes the persisted derived state for the given day.
// Callers must invoke this after any write touching the dates, the mode or
// the manual state, before validation runs.
func (s *Sprint) RecomputeState(today time.Time) {
	s.State = s.ComputeState(today)
}

// Validate ensures that the sprint data is structurally valid; business
// invariants over dates and states live in the validation package
func (s *Sprint) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sprint name cannot be empty")
	}
	if s.ProjectID == 0 {
		return fmt.Errorf("sprint project cannot be empty")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("sprint start and end dates are required")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new sprint
func (s *Sprint) BeforeCreate(_ *gorm.DB) error {
	if s.StateMode == "" {
		s.StateMode = SprintStateModeAuto
	}
	if s.StateManual == "" {
		s.StateManual = SprintStatePlanned
	}
	if s.State == "" {
		s.State = SprintStatePlanned
	}
	return s.Validate()
}
