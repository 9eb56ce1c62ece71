package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carrotgamba/domain/events"
)

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.BalanceChangeEvent{}, "accounts.balance_changed"},
		{events.AccountCreatedEvent{}, "accounts.created"},
		{events.WagerSettledEvent{}, "wagers.settled"},
		{events.LevelUpEvent{}, "progression.level_up"},
		{events.CrateOpenedEvent{}, "items.crate_opened"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.subject, mapper.MapEventToSubject(tt.event))
	}

	// Every published subject is covered by the stream configuration.
	subjects := mapper.GetAllSubjects()
	assert.Len(t, subjects, len(tests))
	for _, tt := range tests {
		assert.Contains(t, subjects, mapper.MapEventToSubject(tt.event))
	}
}
