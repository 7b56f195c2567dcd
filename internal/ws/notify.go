package ws

import (
	"encoding/json"
	"time"
)

type JobEvent struct {
	Type      string `json:"type"`
	JobID     int64  `json:"jobId"`
	Timestamp string `json:"timestamp"`
}

// PublishJobEvent broadcasts a job event to the clients subscribed to
// eventType.
func (h *Hub) PublishJobEvent(eventType string, jobID int64) {
	if h == nil {
		return
	}

	b, err := json.Marshal(JobEvent{
		Type:      eventType,
		JobID:     jobID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.send(outbound{event: eventType, data: b})
}
