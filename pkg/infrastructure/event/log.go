package event

import (
	log "github.com/sirupsen/logrus"

	"marketplace/pkg/domain/service"
)

var _ service.EventDispatcher = &LogDispatcher{}

// LogDispatcher writes domain events to the structured log. It is the
// default dispatcher when no message broker is configured.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("Domain event")
	return nil
}
