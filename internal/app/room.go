package app

import (
	"strings"
	"sync"

	"quiz-room-service/internal/domain"
)

// Room holds one quiz session: its players in join order, their scores, their
// per-player cursors into the active question snapshot, and the answers they
// have pending for their current question. All methods lock internally and
// return copied-out state so callers never send while holding the room.
type Room struct {
	id string

	mu         sync.Mutex
	players    []*domain.Player
	maxPlayers int
	scores     map[string]int
	cursors    map[string]int
	pending    map[string]string
	questions  []domain.Question
	active     bool
}

// NewRoom is exported for registry implementations that create rooms.
func NewRoom(id string) *Room {
	return &Room{
		id:      id,
		scores:  make(map[string]int),
		cursors: make(map[string]int),
		pending: make(map[string]string),
	}
}

func (r *Room) ID() string { return r.id }

// SeatHost applies create-room semantics: adopt the requested size and add the
// caller as a player unless already seated. It cannot fail; re-issued creates
// are idempotent for membership.
func (r *Room) SeatHost(connID, name, country string, maxPlayers int) []domain.PlayerView {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxPlayers = maxPlayers
	if r.findPlayer(connID) == nil {
		r.players = append(r.players, &domain.Player{ConnID: connID, Name: name, Country: country})
		r.scores[connID] = 0
	}
	return r.rosterLocked()
}

// JoinState is the copied-out result of a successful join.
type JoinState struct {
	Roster       []domain.PlayerView
	PlayerIDs    []string
	CurrentCount int
	MaxPlayers   int
	Full         bool
}

// AddPlayer appends a player with score zero, or reports why it cannot.
func (r *Room) AddPlayer(connID, name, country string) (JoinState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= r.maxPlayers {
		return JoinState{}, domain.ErrRoomFull
	}
	if r.findPlayer(connID) != nil {
		return JoinState{}, domain.ErrAlreadyJoined
	}

	r.players = append(r.players, &domain.Player{ConnID: connID, Name: name, Country: country})
	r.scores[connID] = 0

	return JoinState{
		Roster:       r.rosterLocked(),
		PlayerIDs:    r.playerIDsLocked(),
		CurrentCount: len(r.players),
		MaxPlayers:   r.maxPlayers,
		Full:         len(r.players) == r.maxPlayers,
	}, nil
}

// BeginState is the copied-out result of a successful game start.
type BeginState struct {
	Roster    []domain.PlayerView
	PlayerIDs []string
	First     domain.Question
}

// Begin starts a game over the given question snapshot: every player's cursor
// resets to zero, pending answers and eliminations clear, and the room goes
// active. Prior state is left untouched on failure.
func (r *Room) Begin(questions []domain.Question) (BeginState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) < 2 {
		return BeginState{}, domain.ErrNotEnoughPlayers
	}
	if len(questions) == 0 {
		return BeginState{}, domain.ErrNoQuestions
	}

	r.questions = questions
	r.active = true
	r.pending = make(map[string]string)
	r.cursors = make(map[string]int)
	for _, p := range r.players {
		p.Eliminated = false
		r.cursors[p.ConnID] = 0
	}

	return BeginState{
		Roster:    r.rosterLocked(),
		PlayerIDs: r.playerIDsLocked(),
		First:     questions[0],
	}, nil
}

// SubmitOutcome is the copied-out result of an answer submission. Handled is
// false when the submission was silently ignored (inactive game, duplicate,
// eliminated player, unknown player, cursor out of range).
type SubmitOutcome struct {
	Handled    bool
	Correct    bool
	Roster     []domain.PlayerView
	PlayerIDs  []string
	Next       *domain.Question
	Finished   bool
	WinnerID   string
	WinnerName string
}

// Submit scores an answer against the submitter's current question. A correct
// answer awards 10 points and advances the cursor; the player who clears the
// last question wins. An incorrect answer eliminates the submitter; if that
// leaves a single player still in the running, they win as sole survivor.
func (r *Room) Submit(connID, answer string) SubmitOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return SubmitOutcome{}
	}
	if _, dup := r.pending[connID]; dup {
		return SubmitOutcome{}
	}
	player := r.findPlayer(connID)
	if player == nil || player.Eliminated {
		return SubmitOutcome{}
	}
	cursor, ok := r.cursors[connID]
	if !ok || cursor < 0 || cursor >= len(r.questions) {
		return SubmitOutcome{}
	}

	question := r.questions[cursor]
	r.pending[connID] = answer

	submitted := strings.TrimSpace(answer)
	correct := submitted != "" && strings.EqualFold(submitted, strings.TrimSpace(question.Answer))

	out := SubmitOutcome{Handled: true, Correct: correct}

	if correct {
		r.scores[connID] += 10
		cursor++
		r.cursors[connID] = cursor
		delete(r.pending, connID)
		if cursor >= len(r.questions) {
			r.active = false
			out.Finished = true
			out.WinnerID = player.ConnID
			out.WinnerName = player.Name
		} else {
			next := r.questions[cursor]
			out.Next = &next
		}
	} else {
		player.Eliminated = true
		if survivor := r.soleSurvivorLocked(); survivor != nil {
			r.active = false
			out.Finished = true
			out.WinnerID = survivor.ConnID
			out.WinnerName = survivor.Name
		}
	}

	out.Roster = r.rosterLocked()
	out.PlayerIDs = r.playerIDsLocked()
	return out
}

// RemoveState is the copied-out result of removing a player.
type RemoveState struct {
	Roster    []domain.PlayerView
	PlayerIDs []string
	Empty     bool
}

// Remove drops a player and every score/cursor/pending entry keyed by them.
// The second return is false when the connection was not seated here.
func (r *Room) Remove(connID string) (RemoveState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ConnID == connID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RemoveState{}, false
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.scores, connID)
	delete(r.cursors, connID)
	delete(r.pending, connID)

	return RemoveState{
		Roster:    r.rosterLocked(),
		PlayerIDs: r.playerIDsLocked(),
		Empty:     len(r.players) == 0,
	}, true
}

// IsEmpty reports whether the room has no players.
func (r *Room) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}

// IsActive reports whether a game is in progress.
func (r *Room) IsActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Roster returns the externally visible player list.
func (r *Room) Roster() []domain.PlayerView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterLocked()
}

// PlayerIDs returns the connection ids of every seated player.
func (r *Room) PlayerIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerIDsLocked()
}

func (r *Room) findPlayer(connID string) *domain.Player {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) soleSurvivorLocked() *domain.Player {
	var survivor *domain.Player
	for _, p := range r.players {
		if p.Eliminated {
			continue
		}
		if survivor != nil {
			return nil
		}
		survivor = p
	}
	return survivor
}

// rosterLocked skips entries lacking a connection id; partially constructed
// player records never reach clients.
func (r *Room) rosterLocked() []domain.PlayerView {
	roster := make([]domain.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		if p.ConnID == "" {
			continue
		}
		roster = append(roster, domain.PlayerView{
			ID:      p.ConnID,
			Name:    p.Name,
			Country: p.Country,
			Score:   r.scores[p.ConnID],
		})
	}
	return roster
}

func (r *Room) playerIDsLocked() []string {
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		if p.ConnID == "" {
			continue
		}
		ids = append(ids, p.ConnID)
	}
	return ids
}
