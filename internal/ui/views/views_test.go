package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/ui/views"
)

func TestTargetRoundTrip(t *testing.T) {
	targets := []views.Target{
		views.TargetList, views.TargetKanban, views.TargetCalendar, views.TargetTags, views.TargetChat,
	}
	for _, target := range targets {
		assert.Equal(t, target, views.TargetFromString(target.String()))
	}
}

func TestTargetFromStringDefaultsToList(t *testing.T) {
	assert.Equal(t, views.TargetList, views.TargetFromString(""))
	assert.Equal(t, views.TargetList, views.TargetFromString("garbage"))
}
