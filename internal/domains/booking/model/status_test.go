package model_test

import (
	"lodge/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []model.Status{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusCheckedIn,
		model.StatusCheckedOut,
		model.StatusCancelled,
		model.StatusCompleted,
	}

	allowed := map[model.Status][]model.Status{
		model.StatusPending:    {model.StatusConfirmed, model.StatusCancelled},
		model.StatusConfirmed:  {model.StatusCheckedIn, model.StatusCancelled},
		model.StatusCheckedIn:  {model.StatusCheckedOut},
		model.StatusCheckedOut: {model.StatusCompleted},
		model.StatusCancelled:  {},
		model.StatusCompleted:  {},
	}

	// Every edge of the lifecycle graph, and nothing else.
	for _, from := range all {
		for _, to := range all {
			want := false

			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_SkippingStatesIsRejected(t *testing.T) {
	assert.False(t, model.StatusPending.CanTransitionTo(model.StatusCheckedIn))
	assert.False(t, model.StatusPending.CanTransitionTo(model.StatusCompleted))
	assert.False(t, model.StatusConfirmed.CanTransitionTo(model.StatusCompleted))
	assert.False(t, model.StatusCheckedIn.CanTransitionTo(model.StatusCancelled))
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusCheckedOut.IsTerminal())
}

func TestStatus_Active(t *testing.T) {
	assert.True(t, model.StatusPending.IsActive())
	assert.True(t, model.StatusConfirmed.IsActive())
	assert.True(t, model.StatusCheckedIn.IsActive())
	assert.False(t, model.StatusCheckedOut.IsActive())
	assert.False(t, model.StatusCancelled.IsActive())
	assert.False(t, model.StatusCompleted.IsActive())
}

func TestStatus_Locked(t *testing.T) {
	assert.False(t, model.StatusPending.Locked())
	assert.False(t, model.StatusCancelled.Locked())
	assert.True(t, model.StatusConfirmed.Locked())
	assert.True(t, model.StatusCheckedIn.Locked())
	assert.True(t, model.StatusCheckedOut.Locked())
	assert.True(t, model.StatusCompleted.Locked())
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, status)

	_, err = model.ParseStatus("paid")
	assert.Error(t, err)

	_, err = model.ParseStatus("")
	assert.Error(t, err)
}
