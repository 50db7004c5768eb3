// Package mockserp implements a minimal SerpAPI-like HTTP surface for
// offline development and adapter tests.
package mockserp

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/lifelegallysingle/prswarm/internal/search"
)

// Call records a request made to the mock service.
type Call struct {
	Query      string
	NumResults int
}

// Server serves canned organic results for every query.
type Server struct {
	mu      sync.Mutex
	results []search.Result
	calls   []Call
	status  int
}

// New constructs a server answering with the given results.
func New(results []search.Result) *Server {
	return &Server{results: results, status: http.StatusOK}
}

// LoadResults reads a JSON fixture file containing an array of
// normalized results.
func LoadResults(path string) ([]search.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []search.Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SetStatus forces a fixed response status, useful for fault-injection
// in tests. http.StatusOK restores normal behavior.
func (s *Server) SetStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// Calls returns a copy of the recorded requests.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Handler returns the HTTP handler serving the search endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", s.handleSearch)
	return mux
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	num, _ := strconv.Atoi(r.URL.Query().Get("num"))
	if num <= 0 {
		num = 5
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Query: r.URL.Query().Get("q"), NumResults: num})
	status := s.status
	results := s.results
	s.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	resp := searchResponse{OrganicResults: []organicResult{}}
	for _, res := range results {
		if len(resp.OrganicResults) == num {
			break
		}
		resp.OrganicResults = append(resp.OrganicResults, organicResult(res))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
