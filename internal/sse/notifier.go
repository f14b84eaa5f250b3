package sse

import (
	"context"

	"github.com/Almas2004/led/internal/models"
)

// HubNotifier publishes lead changes to the hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Name() string { return "sse" }

func (n *HubNotifier) LeadCreated(_ context.Context, l models.Lead) error {
	n.hub.Publish(EventLeadCreated, l)
	return nil
}

func (n *HubNotifier) LeadUpdated(_ context.Context, l models.Lead) error {
	n.hub.Publish(EventLeadUpdated, l)
	return nil
}
