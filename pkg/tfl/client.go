package tfl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/upstream"
)

const DefaultBaseURL = "https://api.tfl.gov.uk"

const ServiceName = "tfl"

type Client struct {
	AppKey string

	http *upstream.Client
	now  func() time.Time
}

func NewClient(appKey string, opts ...upstream.Option) *Client {
	return &Client{
		AppKey: appKey,
		http:   upstream.NewClient(ServiceName, DefaultBaseURL, opts...),
		now:    time.Now,
	}
}

// JourneyResults returns every journey TfL offers between two locations,
// unmodified and in upstream order
func (c *Client) JourneyResults(ctx context.Context, from string, to string, opts JourneyOptions) ([]Journey, error) {
	if c.AppKey == "" {
		return nil, upstream.ErrCredentialsMissing
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	path := JourneyResultsPath(from, to)
	query := opts.Query(c.AppKey, c.now())

	var response JourneyResponse
	if err := c.http.GetJSON(ctx, path, query, &response); err != nil {
		return nil, err
	}

	log.Debug().
		Str("from", from).
		Str("to", to).
		Int("journeys", len(response.Journeys)).
		Msg("Received TfL journey results")

	if len(response.Journeys) == 0 {
		return nil, fmt.Errorf("journey from %s to %s: %w", from, to, upstream.ErrNoResultsFound)
	}

	return response.Journeys, nil
}

func JourneyResultsPath(from string, to string) string {
	return fmt.Sprintf("/Journey/JourneyResults/%s/to/%s", url.PathEscape(from), url.PathEscape(to))
}
