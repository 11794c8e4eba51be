package elastic_client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/util"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

const eventTemplateName = "commute-planner-events"

// eventTemplate maps the planner event indices so origins and error kinds can be aggregated on
const eventTemplate = `{
  "index_patterns": ["commute-planner-events-*"],
  "template": {
    "mappings": {
      "properties": {
        "ID": {"type": "keyword"},
        "Type": {"type": "keyword"},
        "Timestamp": {"type": "date"},
        "SessionID": {"type": "keyword"},
        "Origin": {"type": "keyword"},
        "Destination": {"type": "keyword"},
        "Profile": {"type": "keyword"},
        "Success": {"type": "boolean"},
        "ErrorKind": {"type": "keyword"},
        "DurationMinutes": {"type": "float"},
        "Fare": {"type": "float"},
        "Options": {"type": "integer"}
      }
    }
  }
}`

type ConnectionConfig struct {
	Address  string
	Username string
	Password string
	Insecure bool
}

func ConnectionConfigFromEnvironment(env map[string]string) ConnectionConfig {
	return ConnectionConfig{
		Address:  env["TRAVIGO_ELASTICSEARCH_ADDRESS"],
		Username: env["TRAVIGO_ELASTICSEARCH_USERNAME"],
		Password: env["TRAVIGO_ELASTICSEARCH_PASSWORD"],
		Insecure: env["TRAVIGO_ELASTICSEARCH_INSECURE"] == "YES",
	}
}

// Connect sets up the shared client and bulk indexer. Without an address it
// does nothing unless the connection is required.
func Connect(required bool) error {
	connection := ConnectionConfigFromEnvironment(util.GetEnvironmentVariables())

	if connection.Address == "" && !required {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	} else if connection.Address == "" && required {
		log.Fatal().Msg("Elasticsearch configuration not set")
	}

	es, err := newClient(connection)
	if err != nil {
		return err
	}

	if _, err := es.Info(); err != nil {
		return err
	}

	if err := putEventTemplate(es); err != nil {
		log.Warn().Err(err).Msg("Failed to install planner event index template")
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return err
	}

	Client = es
	bulkIndexer = indexer

	log.Info().Msgf("Elasticsearch client setup for %s", connection.Address)

	return nil
}

func newClient(connection ConnectionConfig) (*elasticsearch.Client, error) {
	tp := http.DefaultTransport.(*http.Transport).Clone()
	if connection.Insecure {
		tp.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	retryBackoff := backoff.NewExponentialBackOff()

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{connection.Address},
		Username:  connection.Username,
		Password:  connection.Password,
		Transport: tp,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
}

func putEventTemplate(es *elasticsearch.Client) error {
	res, err := es.Indices.PutIndexTemplate(eventTemplateName, strings.NewReader(eventTemplate))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index template rejected: %s", res.String())
	}

	return nil
}

func IndexRequest(indexName string, document io.ReadSeeker) {
	if Client == nil || bulkIndexer == nil {
		return
	}

	err := bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:  indexName,
			Action: "index",
			Body:   document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
	if err != nil {
		log.Error().Err(err).Str("indexName", indexName).Msg("Failed to queue document")
	}
}

func WaitUntilQueueEmpty() {
	if bulkIndexer == nil {
		return
	}
	bulkIndexer.Close(context.Background())
}
