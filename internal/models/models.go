package models

import (
	"encoding/json"
	"time"
)

// State is the task lifecycle tag.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateDone       State = "done"
)

// States enumerates every valid task state.
var States = []State{StatePending, StateInProgress, StateDone}

// Valid reports whether the state is one of the known lifecycle values.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateDone:
		return true
	}
	return false
}

// Priority is the task importance tag.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities enumerates every valid task priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Project groups multiple tasks under a globally unique name.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectDetail is a project augmented with its live task count.
type ProjectDetail struct {
	Project
	TaskCount int64 `json:"task_count"`
}

// Task is a single work item owned by exactly one project.
type Task struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	State       State     `json:"state"`
	Priority    Priority  `json:"priority"`
	ProjectID   int64     `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectSummary aggregates the tasks of one project.
type ProjectSummary struct {
	Total      int64              `json:"total"`
	ByState    map[State]int64    `json:"by_state"`
	ByPriority map[Priority]int64 `json:"by_priority"`
}

// ProjectRef identifies a project inside the global summary.
type ProjectRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TaskCount int64  `json:"task_count"`
}

// GlobalSummary aggregates the whole store. ProjectWithMostTasks is null
// when there are no projects or no project has any task.
type GlobalSummary struct {
	ProjectCount         int64           `json:"project_count"`
	TaskCount            int64           `json:"task_count"`
	TasksByState         map[State]int64 `json:"tasks_by_state"`
	ProjectWithMostTasks *ProjectRef     `json:"project_with_most_tasks"`
}

// Optional is a patch field that distinguishes "omitted" from "set to null".
// A zero Optional means the field was absent from the payload.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional carrying a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON marks the field as present; a JSON null leaves Valid false.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	o.Valid = true
	return json.Unmarshal(data, &o.Value)
}
