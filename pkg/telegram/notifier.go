package telegram

import (
	"context"
	"fmt"

	"github.com/Almas2004/led/internal/models"
)

// LeadNotifier announces new leads in the sales chat.
type LeadNotifier struct {
	client *Client
}

func NewLeadNotifier(client *Client) *LeadNotifier {
	return &LeadNotifier{client: client}
}

func (n *LeadNotifier) Name() string { return "telegram" }

func (n *LeadNotifier) LeadCreated(ctx context.Context, l models.Lead) error {
	return n.client.SendMessage(ctx, FormatLead(l))
}

// LeadUpdated is a no-op: only new leads are announced.
func (n *LeadNotifier) LeadUpdated(context.Context, models.Lead) error {
	return nil
}

// FormatLead renders the chat message for a new lead.
func FormatLead(l models.Lead) string {
	text := fmt.Sprintf("🆕 НОВАЯ ЗАЯВКА:\nИмя: %s\nТел: %s\nГород: %s\nИсточник: %s\nURL: %s",
		l.Name, l.Phone, l.City, l.Source, l.PageURL)
	if l.ProductID != nil {
		text += "\nПродукт: " + *l.ProductID
	}
	if l.SolutionID != nil {
		text += "\nРешение: " + *l.SolutionID
	}
	if l.Message != "" {
		text += "\nСообщение: " + l.Message
	}
	return text
}
