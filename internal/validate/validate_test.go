package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/internal/models"
	"tareas/internal/validate"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "Alpha", "Alpha", false},
		{"surrounding whitespace", "  Alpha  ", "Alpha", false},
		{"inner whitespace kept", "Alpha Beta", "Alpha Beta", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.ProjectName(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, validate.ErrEmptyProjectName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskDescription(t *testing.T) {
	got, err := validate.TaskDescription("  write the report ")
	require.NoError(t, err)
	assert.Equal(t, "write the report", got)

	_, err = validate.TaskDescription(" \n ")
	require.ErrorIs(t, err, validate.ErrEmptyTaskDescription)
}

func TestState(t *testing.T) {
	got, err := validate.State("")
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, got, "omitted state defaults to pending")

	for _, s := range models.States {
		got, err := validate.State(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err = validate.State("cancelled")
	require.Error(t, err)
	_, err = validate.State("Pending")
	require.Error(t, err, "states are case-sensitive")
}

func TestPriority(t *testing.T) {
	got, err := validate.Priority("")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, got, "omitted priority defaults to medium")

	for _, p := range models.Priorities {
		got, err := validate.Priority(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err = validate.Priority("urgent")
	require.Error(t, err)
}

func TestOrder(t *testing.T) {
	got, err := validate.Order("")
	require.NoError(t, err)
	assert.Equal(t, "asc", got, "omitted order defaults to asc")

	got, err = validate.Order("desc")
	require.NoError(t, err)
	assert.Equal(t, "desc", got)

	_, err = validate.Order("descending")
	require.Error(t, err)
}
