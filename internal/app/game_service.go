package app

import (
	"context"
	"strings"

	"quiz-room-service/internal/domain"
)

// RoomRegistry abstracts how live rooms are stored (in-memory, Redis-backed).
// It is the sole owner of room lifetime and keeps the connection-to-room index
// that makes disconnect cleanup O(1).
type RoomRegistry interface {
	GetOrCreate(roomID string) *Room
	Get(roomID string) (*Room, bool)
	Bind(connID, roomID string)
	Unbind(connID string)
	ResolveConn(connID string) (*Room, string, bool)
	DeleteIfEmpty(roomID string)
}

// QuestionRepository serves the question bank (from cache/backing store).
type QuestionRepository interface {
	Bank(ctx context.Context) (domain.QuestionBank, error)
}

// Room sizes accepted at creation time.
var allowedRoomSizes = map[int]bool{2: true, 4: true, 8: true, 16: true, 32: true}

const defaultQuestionTime = 30

// GameService contains the room coordination use cases. Methods emit
// success-path events through the Sender and return an error only for
// conditions the requesting connection must be told about.
type GameService struct {
	rooms        RoomRegistry
	questions    QuestionRepository
	sender       Sender
	questionTime int
}

func NewGameService(rooms RoomRegistry, questions QuestionRepository, sender Sender, questionTime int) *GameService {
	if questionTime <= 0 {
		questionTime = defaultQuestionTime
	}
	return &GameService{rooms: rooms, questions: questions, sender: sender, questionTime: questionTime}
}

// CreateRoom creates the room if absent and seats the caller as its first
// player; on an existing room it adopts the new size and seats the caller only
// if missing. The one rejection is a size outside the allowed set.
func (s *GameService) CreateRoom(_ context.Context, connID, roomID string, maxPlayers int, hostName, hostCountry string) error {
	if !allowedRoomSizes[maxPlayers] {
		return domain.ErrInvalidMaxPlayers
	}

	room := s.rooms.GetOrCreate(roomID)
	roster := room.SeatHost(connID, hostName, hostCountry, maxPlayers)
	s.rooms.Bind(connID, roomID)

	s.sender.Broadcast(room.PlayerIDs(), Event{Type: EventPlayerList, Payload: roster})
	return nil
}

// JoinRoom seats a player in an existing room and tells them to wait for the
// host. When the join fills the room, everyone is notified.
func (s *GameService) JoinRoom(_ context.Context, connID, roomID, name, country string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}

	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)
	if name == "" || country == "" {
		return domain.ErrInvalidName
	}

	state, err := room.AddPlayer(connID, name, country)
	if err != nil {
		return err
	}
	s.rooms.Bind(connID, roomID)

	s.sender.Broadcast(state.PlayerIDs, Event{Type: EventPlayerList, Payload: state.Roster})
	s.sender.Unicast(connID, Event{Type: EventWaitingForHost, Payload: WaitingForHostPayload{
		Message:      "Waiting for host to start...",
		CurrentCount: state.CurrentCount,
		MaxPlayers:   state.MaxPlayers,
	}})
	if state.Full {
		s.sender.Broadcast(state.PlayerIDs, Event{Type: EventRoomFull, Payload: "Room is full, waiting for host to start"})
	}
	return nil
}

// StartGame snapshots the filtered bank into the room and deals every player
// question zero. A missing room is a silent no-op; failures are reported only
// to the requester.
func (s *GameService) StartGame(ctx context.Context, connID, roomID string, filter domain.Filter) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return nil
	}

	bank, err := s.questions.Bank(ctx)
	if err != nil {
		return err
	}

	state, err := room.Begin(bank.Select(filter))
	if err != nil {
		return err
	}

	for _, id := range state.PlayerIDs {
		s.sender.Unicast(id, Event{Type: EventNewQuestion, Payload: NewQuestionPayload{
			Question: state.First,
			TimeLeft: s.questionTime,
		}})
	}
	s.sender.Broadcast(state.PlayerIDs, Event{Type: EventGameStarted})
	s.sender.Broadcast(state.PlayerIDs, Event{Type: EventPlayerList, Payload: state.Roster})
	return nil
}

// SubmitAnswer scores one answer. Every ignorable condition (absent room,
// inactive game, duplicate, eliminated submitter) is a silent no-op.
func (s *GameService) SubmitAnswer(_ context.Context, connID, roomID, answer string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return nil
	}

	out := room.Submit(connID, answer)
	if !out.Handled {
		return nil
	}

	s.sender.Unicast(connID, Event{Type: EventAnswerResult, Payload: AnswerResultPayload{IsCorrect: out.Correct}})
	s.sender.Broadcast(out.PlayerIDs, Event{Type: EventPlayerList, Payload: out.Roster})

	if !out.Correct {
		s.sender.Unicast(connID, Event{Type: EventEliminated, Payload: EliminatedPayload{
			Message: "Wrong answer, game over for you.",
		}})
		if out.Finished {
			s.sender.Broadcast(out.PlayerIDs, Event{Type: EventGameOver, Payload: GameOverPayload{
				WinnerID:   out.WinnerID,
				WinnerName: out.WinnerName,
			}})
		}
		return nil
	}

	if out.Finished {
		s.sender.Broadcast(out.PlayerIDs, Event{Type: EventGameOver, Payload: GameOverPayload{
			WinnerID:   out.WinnerID,
			WinnerName: out.WinnerName,
		}})
		return nil
	}

	s.sender.Unicast(connID, Event{Type: EventNewQuestion, Payload: NewQuestionPayload{
		Question: *out.Next,
		TimeLeft: s.questionTime,
	}})
	return nil
}

// Disconnect removes the connection from whichever room holds it, broadcasts
// the shrunken roster, and drops the room once its last player leaves.
func (s *GameService) Disconnect(connID string) {
	room, roomID, ok := s.rooms.ResolveConn(connID)
	s.rooms.Unbind(connID)
	if !ok {
		return
	}

	state, removed := room.Remove(connID)
	if !removed {
		return
	}
	if state.Empty {
		s.rooms.DeleteIfEmpty(roomID)
		return
	}
	s.sender.Broadcast(state.PlayerIDs, Event{Type: EventPlayerList, Payload: state.Roster})
}
