// Package table hosts the one live checkers game of the process. It
// serializes access to the engine, names each game, records results and
// announces every change to a Broadcaster.
package table

import (
	"sync"
	"time"

	"checkers/internal/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	EventState    = "state"
	EventGameOver = "game_over"
)

// Record is a finished game.
type Record struct {
	GameID     string              `json:"gameId"`
	Verdict    game.Verdict        `json:"verdict"`
	Reason     game.TerminalReason `json:"reason"`
	Moves      int                 `json:"moves"`
	WhiteCount int                 `json:"whiteCount"`
	BlackCount int                 `json:"blackCount"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
}

type Store interface {
	SaveRecord(r Record)
	GetRecord(gameID string) (Record, bool)
	Records() []Record
}

// State is what the presentation layer renders.
type State struct {
	GameID    string    `json:"gameId"`
	StartedAt time.Time `json:"startedAt"`
	game.Snapshot
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ClickResult struct {
	Outcome game.ClickOutcome `json:"outcome"`
	Result  *game.MoveResult  `json:"result,omitempty"`
	State   State             `json:"state"`
}

type Table struct {
	// pubMu is taken before mu and held until the change is broadcast,
	// so listeners see states in the order they were produced.
	pubMu     sync.Mutex
	mu        sync.Mutex
	engine    *game.Engine
	gameID    string
	startedAt time.Time

	store Store
	out   Broadcaster
	now   func() time.Time
}

func New(s Store, b Broadcaster) *Table {
	return NewWithEngine(game.NewEngine(), s, b)
}

// NewWithEngine hosts an engine that may already be mid-game.
func NewWithEngine(e *game.Engine, s Store, b Broadcaster) *Table {
	if b == nil {
		b = nopBroadcaster{}
	}
	t := &Table{
		engine: e,
		gameID: uuid.NewString(),
		store:  s,
		out:    b,
		now:    time.Now,
	}
	t.startedAt = t.now()
	log.Debug().Str("game_id", t.gameID).Msg("game started")
	return t
}

func (t *Table) SetBroadcaster(b Broadcaster) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b == nil {
		b = nopBroadcaster{}
	}
	t.out = b
}

func (t *Table) GameID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gameID
}

// state must be called with mu held.
func (t *Table) state() State {
	snap := t.engine.Snapshot()
	return State{
		GameID:    t.gameID,
		StartedAt: t.startedAt,
		Snapshot:  snap,
		Status:    snap.Status(),
		Message:   snap.GameOverMessage(),
	}
}

func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state()
}

func (t *Table) LegalDestinations(c game.Cell) ([]game.Cell, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.LegalDestinations(c)
}

func (t *Table) Select(c game.Cell) (State, error) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	_, err := t.engine.Select(c)
	st := t.state()
	t.mu.Unlock()

	if err != nil {
		log.Debug().Err(err).Str("game_id", st.GameID).Stringer("cell", c).Msg("selection rejected")
		return st, err
	}
	t.publish(EventState, st)
	return st, nil
}

func (t *Table) ClearSelection() State {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	t.engine.ClearSelection()
	st := t.state()
	t.mu.Unlock()

	t.publish(EventState, st)
	return st
}

func (t *Table) Move(from, to game.Cell) (game.MoveResult, State, error) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	res, err := t.engine.ApplyMove(from, to)
	if err == nil {
		t.afterMove(res)
	}
	st := t.state()
	t.mu.Unlock()

	if err != nil {
		log.Debug().Err(err).Str("game_id", st.GameID).Stringer("from", from).Stringer("to", to).Msg("move rejected")
		return res, st, err
	}
	t.announce(res, st)
	return res, st, nil
}

func (t *Table) Click(c game.Cell) (ClickResult, error) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	outcome, res, err := t.engine.Click(c)
	if err == nil && res != nil {
		t.afterMove(*res)
	}
	st := t.state()
	t.mu.Unlock()

	cr := ClickResult{Outcome: outcome, Result: res, State: st}
	if err != nil {
		log.Debug().Err(err).Str("game_id", st.GameID).Stringer("cell", c).Msg("click rejected")
		return cr, err
	}
	if res != nil {
		t.announce(*res, st)
	} else {
		t.publish(EventState, st)
	}
	return cr, nil
}

// Reset starts a fresh game under a new id.
func (t *Table) Reset() State {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	t.mu.Lock()
	prev := t.gameID
	t.engine.Reset()
	t.gameID = uuid.NewString()
	t.startedAt = t.now()
	st := t.state()
	t.mu.Unlock()

	log.Debug().Str("game_id", st.GameID).Str("previous", prev).Msg("game reset")
	t.publish(EventState, st)
	return st
}

func (t *Table) Records() []Record {
	if t.store == nil {
		return []Record{}
	}
	return t.store.Records()
}

// afterMove must be called with mu held.
func (t *Table) afterMove(res game.MoveResult) {
	ev := log.Debug().
		Str("game_id", t.gameID).
		Stringer("from", res.Move.From).
		Stringer("to", res.Move.To).
		Bool("captured", res.Captured).
		Bool("promoted", res.Promoted)
	ev.Msg("move applied")

	if res.Verdict == game.VerdictNone {
		return
	}
	rec := Record{
		GameID:     t.gameID,
		Verdict:    res.Verdict,
		Reason:     res.Reason,
		Moves:      len(t.engine.History()),
		WhiteCount: t.engine.WhiteCount(),
		BlackCount: t.engine.BlackCount(),
		StartedAt:  t.startedAt,
		FinishedAt: t.now(),
	}
	if t.store != nil {
		t.store.SaveRecord(rec)
	}
	log.Debug().
		Str("game_id", t.gameID).
		Stringer("verdict", res.Verdict).
		Stringer("reason", res.Reason).
		Int("moves", rec.Moves).
		Msg("game over")
}

func (t *Table) announce(res game.MoveResult, st State) {
	t.publish(EventState, st)
	if res.Verdict != game.VerdictNone {
		t.publish(EventGameOver, map[string]interface{}{
			"gameId":  st.GameID,
			"verdict": res.Verdict,
			"reason":  res.Reason,
			"message": st.Message,
		})
	}
}

func (t *Table) publish(action string, data interface{}) {
	t.mu.Lock()
	out := t.out
	t.mu.Unlock()
	out.Broadcast(action, data)
}
