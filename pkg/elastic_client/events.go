package elastic_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/ctdf"
)

// EventRecorder indexes planner events into a weekly index. It does nothing
// until Connect has succeeded.
type EventRecorder struct {
	IndexPrefix string
	Index       func(indexName string, document []byte)
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{
		IndexPrefix: eventTemplateName,
		Index: func(indexName string, document []byte) {
			IndexRequest(indexName, bytes.NewReader(document))
		},
	}
}

func (r *EventRecorder) Record(event ctdf.PlannerEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	document, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode planner event")
		return
	}

	r.Index(IndexName(r.IndexPrefix, event.Timestamp), document)
}

func IndexName(prefix string, timestamp time.Time) string {
	yearNumber, weekNumber := timestamp.ISOWeek()
	return fmt.Sprintf("%s-%d-%d", prefix, yearNumber, weekNumber)
}
