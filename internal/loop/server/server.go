// Package server keeps track of the game sessions running in one process.
// Every session plays its own simulation; the hub only relays process-wide
// events to them and keeps a shared leaderboard.
package server

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/glasteroids/internal/config"
	loopconfig "github.com/tomz197/glasteroids/internal/loop/config"
)

// SessionHub is the interface clients use to talk to the hub.
type SessionHub interface {
	RegisterSession(username string) *Session
	UnregisterSession(id int)
	ReportScore(id, score int)
	TopScores() []TopScoreEntry
	Sessions() int
}

// Session is one connected player's view of the hub.
type Session struct {
	ID       int
	Username string
	EventsCh chan Event // Closed when the session is unregistered
}

// Event is sent from the hub to a session.
type Event struct {
	Type     EventType
	Settings config.Settings // For EventSettingsChanged
}

// EventType identifies the kind of hub event.
type EventType int

const (
	EventServerShutdown EventType = iota
	EventSettingsChanged
)

func (t EventType) String() string {
	switch t {
	case EventServerShutdown:
		return "shutdown"
	case EventSettingsChanged:
		return "settings"
	default:
		return "unknown"
	}
}

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	id       int // Used for deterministic tie-break when scores are equal
}

// Hub manages the registered sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	best     map[int]TopScoreEntry // Best score of each live session
	retired  []TopScoreEntry       // Top entries of sessions that have left
	nextID   int
	logger   *log.Logger

	settings    config.Settings // Last broadcast settings
	hasSettings bool
}

// Compile-time check that Hub implements SessionHub.
var _ SessionHub = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sessions: make(map[int]*Session),
		best:     make(map[int]TopScoreEntry),
		nextID:   1,
		logger:   logger,
	}
}

// RegisterSession registers a new session with the given username and
// returns its handle. Long names are truncated.
func (h *Hub) RegisterSession(username string) *Session {
	if r := []rune(username); len(r) > loopconfig.MaxUsernameLength {
		username = string(r[:loopconfig.MaxUsernameLength])
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	s := &Session{
		ID:       h.nextID,
		Username: username,
		EventsCh: make(chan Event, 16),
	}
	h.nextID++
	h.sessions[s.ID] = s
	h.logger.Debug("session registered", "id", s.ID, "user", username, "sessions", len(h.sessions))
	return s
}

// UnregisterSession removes a session and closes its event channel. Its
// best score stays on the leaderboard.
func (h *Hub) UnregisterSession(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return
	}
	if e, ok := h.best[id]; ok {
		h.retired = topEntries(append(h.retired, e), loopconfig.TopScoreCount)
		delete(h.best, id)
	}
	close(s.EventsCh)
	delete(h.sessions, id)
	h.logger.Debug("session unregistered", "id", id, "sessions", len(h.sessions))
}

// ReportScore records score for a session if it beats its previous best.
func (h *Hub) ReportScore(id, score int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok || score <= 0 {
		return
	}
	if e, ok := h.best[id]; ok && e.Score >= score {
		return
	}
	h.best[id] = TopScoreEntry{Username: s.Username, Score: score, id: id}
}

// TopScores returns the best entries across live and departed sessions,
// highest first.
func (h *Hub) TopScores() []TopScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	all := make([]TopScoreEntry, 0, len(h.best)+len(h.retired))
	all = append(all, h.retired...)
	for _, e := range h.best {
		all = append(all, e)
	}
	return topEntries(all, loopconfig.TopScoreCount)
}

func topEntries(entries []TopScoreEntry, n int) []TopScoreEntry {
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return entries[:min(len(entries), n)]
}

// Sessions returns the number of registered sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// BroadcastSettings hands reloaded settings to every session. Sessions
// whose queue is full miss the update.
func (h *Hub) BroadcastSettings(cfg config.Settings) {
	h.mu.Lock()
	h.settings, h.hasSettings = cfg, true
	h.mu.Unlock()
	h.broadcast(Event{Type: EventSettingsChanged, Settings: cfg})
}

// CurrentSettings returns the last broadcast settings, for sessions that
// join after a reload.
func (h *Hub) CurrentSettings() (config.Settings, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings, h.hasSettings
}

// FollowSettings broadcasts every settings value received until both
// channels are closed, typically those of a config.Watcher. Reload errors
// are logged and the previous settings stay in force.
func (h *Hub) FollowSettings(settings <-chan config.Settings, errs <-chan error) {
	for settings != nil || errs != nil {
		select {
		case cfg, ok := <-settings:
			if !ok {
				settings = nil
				continue
			}
			h.logger.Info("settings reloaded", "sessions", h.Sessions())
			h.BroadcastSettings(cfg)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			h.logger.Warn("settings reload failed", "err", err)
		}
	}
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		select {
		case s.EventsCh <- ev:
		default:
			h.logger.Warn("session event queue full", "id", s.ID, "event", ev.Type)
		}
	}
}

// Shutdown notifies every session that the process is going away and
// waits for them to disconnect, up to timeout. It reports whether all
// sessions left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.broadcast(Event{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Sessions() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.logger.Warn("sessions still connected at shutdown", "sessions", h.Sessions())
			return false
		case <-ticker.C:
		}
	}
}
