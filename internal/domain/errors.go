package domain

import "errors"

var (
	// ErrRoomNotFound is returned when an event references a room id with no live room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrInvalidName is returned when a join carries an empty name or country.
	ErrInvalidName = errors.New("name and country required")
	// ErrInvalidMaxPlayers is returned when a create carries a size outside the allowed set.
	ErrInvalidMaxPlayers = errors.New("max players must be one of 2, 4, 8, 16 or 32")
	// ErrRoomFull is returned when a join would exceed the room's player limit.
	ErrRoomFull = errors.New("room is full")
	// ErrAlreadyJoined is returned when a connection joins the same room twice.
	ErrAlreadyJoined = errors.New("already joined")
	// ErrNotEnoughPlayers is returned when a game is started with fewer than two players.
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	// ErrNoQuestions is returned when the start-game filters match nothing in the bank.
	ErrNoQuestions = errors.New("no questions for the selected filters")
	// ErrBankEmpty indicates the question bank loaded with no records at all.
	ErrBankEmpty = errors.New("question bank is empty")
)
