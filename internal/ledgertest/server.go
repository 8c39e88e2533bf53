// Package ledgertest provides an in-memory Action Ledger service for tests.
// It implements the HTTP surface the SDK consumes (event submission, chain
// verification, listing, health) with real per-agent hash chaining, so
// client tests can assert chain invariants instead of canned responses.
package ledgertest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/action-ledger/sdk-go/ledger"
)

// Server is a fake ledger backed by per-agent in-memory chains.
type Server struct {
	// APIKey is the only key the server accepts.
	APIKey string

	mu     sync.Mutex
	chains map[string][]ledger.Event
	httpd  *httptest.Server
}

// New starts a fake ledger accepting the given API key. Callers must Close it.
func New(apiKey string) *Server {
	s := &Server{
		APIKey: apiKey,
		chains: make(map[string][]ledger.Event),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/verify", s.handleVerify)
	mux.HandleFunc("/health", s.handleHealth)
	s.httpd = httptest.NewServer(mux)
	return s
}

// URL is the base URL of the fake service.
func (s *Server) URL() string { return s.httpd.URL }

// Close shuts the fake service down.
func (s *Server) Close() { s.httpd.Close() }

// EventCount returns how many events are stored for agentID.
func (s *Server) EventCount(agentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chains[agentID])
}

// Tamper mutates the stored input_hash of event index in agentID's chain,
// without recomputing hashes, simulating a retroactive edit.
func (s *Server) Tamper(agentID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chain := s.chains[agentID]
	if index < 0 || index >= len(chain) {
		return
	}
	chain[index].InputHash = ledger.HashContent("tampered")
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		reject(w, http.StatusUnauthorized, "invalid API key")
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.appendEvent(w, r)
	case http.MethodGet:
		s.listEvents(w, r)
	default:
		reject(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) appendEvent(w http.ResponseWriter, r *http.Request) {
	var sub ledger.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		reject(w, http.StatusUnprocessableEntity, "malformed body")
		return
	}
	if sub.AgentID == "" || sub.ActionType == "" || sub.InputHash == "" || sub.OutputHash == "" {
		reject(w, http.StatusUnprocessableEntity, "missing required field")
		return
	}

	s.mu.Lock()
	chain := s.chains[sub.AgentID]
	prev := ""
	if len(chain) > 0 {
		prev = chain[len(chain)-1].EventHash
	}
	event := ledger.Event{
		EventID:           uuid.NewString(),
		AgentID:           sub.AgentID,
		ActionType:        sub.ActionType,
		Timestamp:         time.Now().UTC(),
		InputHash:         sub.InputHash,
		OutputHash:        sub.OutputHash,
		ToolName:          sub.ToolName,
		Environment:       sub.Environment,
		ModelVersion:      sub.ModelVersion,
		PromptVersion:     sub.PromptVersion,
		PreviousEventHash: prev,
	}
	event.EventHash = eventHash(event)
	s.chains[sub.AgentID] = append(chain, event)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	agentID := r.URL.Query().Get("agent_id")
	actionType := r.URL.Query().Get("action_type")
	page := intParam(r, "page", 1)
	pageSize := intParam(r, "page_size", 50)

	s.mu.Lock()
	var all []ledger.Event
	for id, chain := range s.chains {
		if agentID != "" && id != agentID {
			continue
		}
		for _, e := range chain {
			if actionType != "" && e.ActionType != actionType {
				continue
			}
			all = append(all, e)
		}
	}
	s.mu.Unlock()

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	writeJSON(w, http.StatusOK, ledger.EventPage{
		Events:   all[start:end],
		Total:    len(all),
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		reject(w, http.StatusUnauthorized, "invalid API key")
		return
	}
	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		reject(w, http.StatusUnprocessableEntity, "agent_id is required")
		return
	}

	s.mu.Lock()
	chain := append([]ledger.Event(nil), s.chains[agentID]...)
	s.mu.Unlock()

	result := ledger.VerifyResult{AgentID: agentID, IsValid: true, EventsChecked: len(chain)}
	prev := ""
	for i, e := range chain {
		if e.PreviousEventHash != prev || eventHash(e) != e.EventHash {
			result.IsValid = false
			result.Details = fmt.Sprintf("chain broken at event %d (%s)", i, e.EventID)
			break
		}
		prev = e.EventHash
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ledger.Health{Status: "healthy"})
}

func (s *Server) authorized(r *http.Request) bool {
	return r.Header.Get("X-API-Key") == s.APIKey
}

// eventHash chains an event to its predecessor: a digest over the event's
// own fields plus previous_event_hash, so any retroactive edit breaks every
// later link.
func eventHash(e ledger.Event) string {
	fields := strings.Join([]string{
		e.EventID,
		e.AgentID,
		e.ActionType,
		e.InputHash,
		e.OutputHash,
		e.PreviousEventHash,
	}, "|")
	h := sha256.Sum256([]byte(fields))
	return hex.EncodeToString(h[:])
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func reject(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
