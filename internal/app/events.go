package app

import "quiz-room-service/internal/domain"

// Event names on the server-to-client side of the protocol.
const (
	EventAssignID       = "assignId"
	EventPlayerList     = "playerListUpdate"
	EventWaitingForHost = "waitingForHost"
	EventRoomFull       = "roomFull"
	EventGameStarted    = "gameStarted"
	EventNewQuestion    = "newQuestion"
	EventAnswerResult   = "answerResult"
	EventEliminated     = "eliminated"
	EventGameOver       = "gameOver"
	EventError          = "error"
)

// Event is one outbound message before transport framing.
type Event struct {
	Type    string
	Payload any
}

// Sender routes outbound events to live connections. Implementations must not
// block: sends happen after room state has been copied out, fire-and-forget.
type Sender interface {
	Unicast(connID string, event Event)
	Broadcast(connIDs []string, event Event)
}

type WaitingForHostPayload struct {
	Message      string `json:"message"`
	CurrentCount int    `json:"currentCount"`
	MaxPlayers   int    `json:"maxPlayers"`
}

type NewQuestionPayload struct {
	Question domain.Question `json:"question"`
	TimeLeft int             `json:"timeLeft"`
}

type AnswerResultPayload struct {
	IsCorrect bool `json:"isCorrect"`
}

type EliminatedPayload struct {
	Message string `json:"message"`
}

type GameOverPayload struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}
