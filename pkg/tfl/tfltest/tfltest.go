// Package tfltest provides a fake TfL journey planner for tests
package tfltest

import (
	_ "embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// JourneyResults has four journeys: two share endpoints differing only in
// case and whitespace, and the last has no legs
//
//go:embed journeyresults.json
var JourneyResults string

const EmptyResults = `{"journeys": []}`

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	Requests []*http.Request
	Body     string
	Status   int
}

func NewServer(body string) *Server {
	s := &Server{Body: body, Status: http.StatusOK}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests = append(s.Requests, r)
		body := s.Body
		status := s.Status
		s.mu.Unlock()

		if !strings.HasPrefix(r.URL.Path, "/Journey/JourneyResults/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	return s
}

func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}

func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Requests) == 0 {
		return nil
	}
	return s.Requests[len(s.Requests)-1]
}

// Respond changes what later requests receive
func (s *Server) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
	s.Body = body
}
