// Package mcp exposes a match over the Model Context Protocol so an MCP
// client can play one side against the built-in CPU opponent.
package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jyamaiken/triple-triad-app/internal/game"
	"github.com/jyamaiken/triple-triad-app/internal/log"
	"github.com/jyamaiken/triple-triad-app/internal/view"
)

// ToolResponse is the JSON envelope every tool call returns.
type ToolResponse struct {
	Events       []view.EventView `json:"events"`
	State        *view.StateView  `json:"state,omitempty"`
	SeriesOver   bool             `json:"series_over"`
	SeriesWinner string           `json:"series_winner,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// Session drives one match. The MCP client owns one side; the CPU
// evaluator answers for the other. Tool calls are serialized by mu.
type Session struct {
	mu      sync.Mutex
	match   *game.Match
	events  *log.MemoryLogger
	agent   game.Player // side the client plays
	drained int         // events already delivered
	zlog    *zap.Logger
}

// SessionConfig carries the knobs for a new session.
type SessionConfig struct {
	Rules    game.Rules
	Agent    game.Player // side the MCP client plays
	Seed     int64       // 0 picks a random seed
	CardFile string      // optional catalog override
	Logger   *zap.Logger
}

// NewSession starts a match, deals the first round, and tosses the
// coin. CPU turns run immediately, so the first state the client sees
// is one it can act on.
func NewSession(cfg SessionConfig) (*Session, error) {
	catalog := game.DefaultCatalog()
	if cfg.CardFile != "" {
		var err error
		catalog, err = game.LoadCatalog(cfg.CardFile)
		if err != nil {
			return nil, err
		}
	}
	events := log.NewMemoryLogger()
	m, err := game.NewMatch(game.MatchConfig{
		Rules:   cfg.Rules,
		Seed:    cfg.Seed,
		Catalog: catalog,
		Logger:  events,
	})
	if err != nil {
		return nil, err
	}
	s := &Session{match: m, events: events, agent: cfg.Agent, zlog: cfg.Logger}
	if s.zlog == nil {
		s.zlog = zap.NewNop()
	}
	if err := s.beginRound(); err != nil {
		return nil, err
	}
	s.zlog.Info("session started",
		zap.String("match", m.ID.String()),
		zap.Int64("seed", m.Seed()),
		zap.String("agent", s.agent.String()),
		zap.String("rules", cfg.Rules.String()))
	return s, nil
}

// beginRound deals, tosses, then lets the CPU move until the agent is
// up or the round is over.
func (s *Session) beginRound() error {
	if err := s.match.DealHands(); err != nil {
		return err
	}
	if _, err := s.match.TossCoin(); err != nil {
		return err
	}
	return s.advanceCPU()
}

// advanceCPU plays CPU plies while it is the CPU's turn.
func (s *Session) advanceCPU() error {
	for s.match.Phase == game.PhasePlaying && s.match.Turn != s.agent {
		cpu := s.match.Turn
		mv, err := s.match.CPUMove()
		if err != nil {
			return fmt.Errorf("cpu move: %w", err)
		}
		if _, err := s.match.PlaceCard(cpu, mv.Hand, mv.Tile); err != nil {
			return fmt.Errorf("cpu place: %w", err)
		}
	}
	return nil
}

// PlayCard places the agent's card, then runs CPU turns until the agent
// is up again or the round ends. A rejected move leaves the match
// untouched and returns the rejection.
func (s *Session) PlayCard(handIdx, tile int) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.match.PlaceCard(s.agent, handIdx, tile); err != nil {
		return nil, err
	}
	if err := s.advanceCPU(); err != nil {
		return nil, err
	}
	return s.respond(""), nil
}

// NextRound advances past a finished round and plays the new round up
// to the agent's first turn.
func (s *Session) NextRound() (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.match.NextRound(); err != nil {
		return nil, err
	}
	if err := s.beginRound(); err != nil {
		return nil, err
	}
	return s.respond(""), nil
}

// State reports the current snapshot without acting.
func (s *Session) State() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respond("")
}

// Resign abandons the series. The caller forgets the session afterward.
func (s *Session) Resign() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zlog.Info("match resigned",
		zap.String("match", s.match.ID.String()),
		zap.Int("round", s.match.Round))
	return s.respond("Series abandoned. Use start_match to begin a new one.")
}

// respond builds the envelope with the events logged since the last
// call. Callers hold the session lock.
func (s *Session) respond(msg string) *ToolResponse {
	all := s.events.Events()
	fresh := all[s.drained:]
	s.drained = len(all)

	resp := &ToolResponse{
		Events:  view.BuildEventViews(fresh),
		State:   view.BuildStateView(s.match, s.agent),
		Message: msg,
	}
	if s.match.Phase == game.PhaseSeriesOver {
		resp.SeriesOver = true
		resp.SeriesWinner = winnerLabel(s.match.SeriesWinner())
	}
	return resp
}

func winnerLabel(p game.Player) string {
	if p == game.PlayerNone {
		return "draw"
	}
	return p.String()
}

// respondJSON marshals a tool response for the MCP text result.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
