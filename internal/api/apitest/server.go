// Package apitest provides an in-memory fake of the console backend for
// service-level tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowdesk/partner-console/internal/api"
)

type ownedBlock struct {
	employeeID string
	block      api.Block
}

type ownedRecurringBlock struct {
	employeeID string
	block      api.RecurringBlock
}

// Server is a fake console backend. All state is guarded by mu; tests may
// read the exported snapshot accessors after driving the client.
type Server struct {
	mu              sync.Mutex
	availability    []api.AvailabilityDay
	blocks          map[string]ownedBlock
	recurringBlocks map[string]ownedRecurringBlock
	bonus           api.BonusStatus
	lastCheckinID   string
	lastCheckin     *api.CompleteAppointmentRequest
	checkinFailures int
	checkinDelay    time.Duration
	checkinCount    int

	httpServer *httptest.Server
}

// NewServer starts the fake backend.
func NewServer() *Server {
	s := &Server{
		blocks:          make(map[string]ownedBlock),
		recurringBlocks: make(map[string]ownedRecurringBlock),
	}

	r := chi.NewRouter()
	r.Get("/establishments/availability", s.handleGetAvailability)
	r.Post("/establishments/availability", s.handleSaveAvailability)
	r.Post("/employees/{employeeID}/blocks", s.handleCreateBlock)
	r.Get("/employees/{employeeID}/blocks", s.handleListBlocks)
	r.Delete("/blocks/{blockID}", s.handleDeleteBlock)
	r.Post("/employees/{employeeID}/recurring-blocks", s.handleCreateRecurringBlock)
	r.Get("/employees/{employeeID}/recurring-blocks", s.handleListRecurringBlocks)
	r.Delete("/recurring-blocks/{recurringBlockID}", s.handleDeleteRecurringBlock)
	r.Get("/partner/check-bonus", s.handleCheckBonus)
	r.Patch("/partner/appointments/{appointmentID}/status", s.handleCompleteAppointment)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the backend base URL.
func (s *Server) URL() string { return s.httpServer.URL }

// Close shuts the backend down.
func (s *Server) Close() { s.httpServer.Close() }

// SeedAvailability sets the persisted schedule served by GET.
func (s *Server) SeedAvailability(days []api.AvailabilityDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.availability = append([]api.AvailabilityDay(nil), days...)
}

// SavedAvailability returns the last full-replace payload.
func (s *Server) SavedAvailability() []api.AvailabilityDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.AvailabilityDay(nil), s.availability...)
}

// SetBonus configures the loyalty snapshot served by check-bonus.
func (s *Server) SetBonus(b api.BonusStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bonus = b
}

// FailNextCheckins makes the next n check-in submissions return 500.
func (s *Server) FailNextCheckins(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkinFailures = n
}

// SetCheckinDelay makes check-in submissions take at least d to complete.
func (s *Server) SetCheckinDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkinDelay = d
}

// LastCheckin returns the appointment id and body of the last submission.
func (s *Server) LastCheckin() (string, *api.CompleteAppointmentRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCheckinID, s.lastCheckin
}

// CheckinCount reports how many submissions reached the backend.
func (s *Server) CheckinCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkinCount
}

func (s *Server) handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	days := append([]api.AvailabilityDay(nil), s.availability...)
	s.mu.Unlock()
	if days == nil {
		days = []api.AvailabilityDay{}
	}
	writeJSON(w, days)
}

func (s *Server) handleSaveAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Availability []api.AvailabilityDay `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Availability == nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.availability = body.Availability
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var req api.CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	block := api.Block{ID: uuid.NewString(), StartsAt: req.StartsAt, EndsAt: req.EndsAt, Reason: req.Reason}
	s.mu.Lock()
	s.blocks[block.ID] = ownedBlock{employeeID: employeeID, block: block}
	s.mu.Unlock()
	writeJSON(w, block)
}

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	out := []api.Block{}
	s.mu.Lock()
	for _, owned := range s.blocks {
		if owned.employeeID == employeeID {
			out = append(out, owned.block)
		}
	}
	s.mu.Unlock()
	writeJSON(w, out)
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "blockID")
	s.mu.Lock()
	_, ok := s.blocks[blockID]
	delete(s.blocks, blockID)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "block not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateRecurringBlock(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var req api.CreateRecurringBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	block := api.RecurringBlock{
		ID:        uuid.NewString(),
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	s.mu.Lock()
	s.recurringBlocks[block.ID] = ownedRecurringBlock{employeeID: employeeID, block: block}
	s.mu.Unlock()
	writeJSON(w, block)
}

func (s *Server) handleListRecurringBlocks(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	out := []api.RecurringBlock{}
	s.mu.Lock()
	for _, owned := range s.recurringBlocks {
		if owned.employeeID == employeeID {
			out = append(out, owned.block)
		}
	}
	s.mu.Unlock()
	writeJSON(w, out)
}

func (s *Server) handleDeleteRecurringBlock(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "recurringBlockID")
	s.mu.Lock()
	_, ok := s.recurringBlocks[blockID]
	delete(s.recurringBlocks, blockID)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "recurring block not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckBonus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	bonus := s.bonus
	s.mu.Unlock()
	writeJSON(w, bonus)
}

func (s *Server) handleCompleteAppointment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delay := s.checkinDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	if s.checkinFailures > 0 {
		s.checkinFailures--
		s.mu.Unlock()
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.mu.Unlock()

	var req api.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.lastCheckinID = chi.URLParam(r, "appointmentID")
	s.lastCheckin = &req
	s.checkinCount++
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
