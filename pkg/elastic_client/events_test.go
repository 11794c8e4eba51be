package elastic_client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/commute/pkg/ctdf"
)

func TestEventRecorder(t *testing.T) {
	var indexName string
	var document []byte

	recorder := &EventRecorder{
		IndexPrefix: "commute-planner-events",
		Index: func(name string, body []byte) {
			indexName = name
			document = body
		},
	}

	recorder.Record(ctdf.PlannerEvent{
		Type:        ctdf.PlannerEventTypeJourney,
		Timestamp:   time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC),
		Origin:      "SW1A 1AA",
		Destination: "E1 6AN",
		Success:     true,
	})

	assert.Equal(t, "commute-planner-events-2026-42", indexName)

	var decoded ctdf.PlannerEvent
	require.NoError(t, json.Unmarshal(document, &decoded))
	assert.NotEmpty(t, decoded.ID)
	assert.Equal(t, ctdf.PlannerEventTypeJourney, decoded.Type)
	assert.Equal(t, "E1 6AN", decoded.Destination)
}

func TestIndexRequestWithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEventRecorder().Record(ctdf.PlannerEvent{Type: ctdf.PlannerEventTypeRoad})
		WaitUntilQueueEmpty()
	})
}

func TestConnectionConfigFromEnvironment(t *testing.T) {
	connection := ConnectionConfigFromEnvironment(map[string]string{
		"TRAVIGO_ELASTICSEARCH_ADDRESS":  "https://search.local:9200",
		"TRAVIGO_ELASTICSEARCH_USERNAME": "commute",
		"TRAVIGO_ELASTICSEARCH_INSECURE": "YES",
	})

	assert.Equal(t, "https://search.local:9200", connection.Address)
	assert.Equal(t, "commute", connection.Username)
	assert.Empty(t, connection.Password)
	assert.True(t, connection.Insecure)
}

func TestEventTemplateCoversEventFields(t *testing.T) {
	var template struct {
		IndexPatterns []string `json:"index_patterns"`
		Template      struct {
			Mappings struct {
				Properties map[string]interface{} `json:"properties"`
			} `json:"mappings"`
		} `json:"template"`
	}
	require.NoError(t, json.Unmarshal([]byte(eventTemplate), &template))

	assert.Equal(t, []string{NewEventRecorder().IndexPrefix + "-*"}, template.IndexPatterns)

	document, err := json.Marshal(ctdf.PlannerEvent{Profile: "driving", ErrorKind: "no_results", Options: 1, Fare: new(float64)})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(document, &fields))

	for field := range fields {
		assert.Contains(t, template.Template.Mappings.Properties, field)
	}
}
