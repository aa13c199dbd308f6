package pubsub

import (
	"listingmanager/internal/domain/service"
)

// eventAttributes are the message attributes every provider attaches for
// filtering and tracing.
func eventAttributes(event *service.LifecycleEvent) map[string]string {
	attributes := map[string]string{
		"event_id":   event.EventID,
		"event_type": event.Type,
		"device_id":  event.DeviceID,
	}
	if event.CycleID != "" {
		attributes["cycle_id"] = event.CycleID
	}

	return attributes
}
