package ws

import (
	"encoding/json"
	"strings"
	"time"
)

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Term      string `json:"term"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

type SubscribedEvent struct {
	Type string `json:"type"`
	Term string `json:"term"`
}

// Notifier adapts the hub to the orchestrator's fetch notification hook.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) JobsUpdated(rawTerm string, count int) {
	if n == nil || n.hub == nil {
		return
	}

	rawTerm = strings.ToLower(strings.TrimSpace(rawTerm))
	if rawTerm == "" {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      "jobs_updated",
		Term:      rawTerm,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(rawTerm, b)
}
