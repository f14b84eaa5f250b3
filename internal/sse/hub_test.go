package sse

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Almas2004/led/internal/models"
)

func TestHubNotifier_PublishesLeadEvents(t *testing.T) {
	hub := NewHub()
	n := NewHubNotifier(hub)

	// Nobody listening.
	require.NoError(t, n.LeadCreated(context.Background(), models.Lead{ID: 1}))

	sub := hub.Subscribe("console-1")
	require.NoError(t, n.LeadCreated(context.Background(), models.Lead{ID: 2, Name: "Dana", Source: "home_bottom", Status: models.LeadStatusNew}))
	require.NoError(t, n.LeadUpdated(context.Background(), models.Lead{ID: 2, Status: models.LeadStatusDone}))

	var ev LeadEvent
	require.NoError(t, json.Unmarshal(<-sub.Events, &ev))
	assert.Equal(t, EventLeadCreated, ev.Event)
	assert.Equal(t, int64(2), ev.LeadID)
	assert.Equal(t, "home_bottom", ev.Source)
	assert.Equal(t, models.LeadStatusNew, ev.Status)

	require.NoError(t, json.Unmarshal(<-sub.Events, &ev))
	assert.Equal(t, EventLeadUpdated, ev.Event)
	assert.Equal(t, models.LeadStatusDone, ev.Status)

	hub.Unsubscribe("console-1")
	assert.Zero(t, hub.Subscribers())
	_, open := <-sub.Events
	assert.False(t, open)
}

func TestHub_ResubscribeClosesOldStream(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe("console-1")
	second := hub.Subscribe("console-1")

	_, open := <-first.Events
	assert.False(t, open)
	assert.Equal(t, 1, hub.Subscribers())

	hub.Publish(EventLeadCreated, models.Lead{ID: 7})
	assert.Len(t, second.Events, 1)
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("slow")
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(EventLeadUpdated, models.Lead{ID: int64(i)})
	}
	assert.Len(t, sub.Events, subscriberBuffer)
}
