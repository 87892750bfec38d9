package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quiz-room-service/internal/app"
	"quiz-room-service/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.GameService
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, hub *Hub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type createRoomPayload struct {
	RoomID      string `json:"roomId"`
	MaxPlayers  int    `json:"maxPlayers"`
	HostName    string `json:"hostName"`
	HostCountry string `json:"hostCountry"`
}

type joinRoomPayload struct {
	RoomID  string `json:"roomId"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type startGamePayload struct {
	RoomID  string `json:"roomId"`
	Subject string `json:"subject,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Level   *int   `json:"level,omitempty"`
}

type submitAnswerPayload struct {
	RoomID string `json:"roomId"`
	Answer string `json:"answer"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the room
// coordination use cases. Each connection gets a fresh id, announced via
// assignId before anything else.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	send := h.hub.register(connID)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for event := range send {
			if err := conn.WriteJSON(outboundMessage{Type: event.Type, Payload: event.Payload}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	h.hub.Unicast(connID, app.Event{Type: app.EventAssignID, Payload: connID})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r, connID, inbound)
	}

	// transport-level disconnect: remove the player before tearing down the
	// send channel so the roster broadcast reaches everyone else
	h.service.Disconnect(connID)
	h.hub.unregister(connID)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, connID string, inbound inboundMessage) {
	ctx := r.Context()

	switch inbound.Type {
	case "createRoom":
		var p createRoomPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.sendError(connID, "invalid createRoom payload")
			return
		}
		if err := h.service.CreateRoom(ctx, connID, p.RoomID, p.MaxPlayers, p.HostName, p.HostCountry); err != nil {
			h.sendFailure(connID, err)
		}
	case "joinRoom":
		var p joinRoomPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.sendError(connID, "invalid joinRoom payload")
			return
		}
		if err := h.service.JoinRoom(ctx, connID, p.RoomID, p.Name, p.Country); err != nil {
			h.sendFailure(connID, err)
		}
	case "startGame":
		var p startGamePayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.sendError(connID, "invalid startGame payload")
			return
		}
		filter := domain.Filter{Subject: p.Subject, Topic: p.Topic, Level: p.Level}
		if err := h.service.StartGame(ctx, connID, p.RoomID, filter); err != nil {
			h.sendFailure(connID, err)
		}
	case "submitAnswer":
		var p submitAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &p); err != nil {
			h.sendError(connID, "invalid submitAnswer payload")
			return
		}
		if err := h.service.SubmitAnswer(ctx, connID, p.RoomID, p.Answer); err != nil {
			h.sendFailure(connID, err)
		}
	default:
		h.sendError(connID, "unsupported message type")
	}
}

// sendFailure routes a domain error back to the requester. A full room gets
// its dedicated event type; everything else is a plain error message.
func (h *WSHandler) sendFailure(connID string, err error) {
	if errors.Is(err, domain.ErrRoomFull) {
		h.hub.Unicast(connID, app.Event{Type: app.EventRoomFull, Payload: err.Error()})
		return
	}
	h.sendError(connID, err.Error())
}

func (h *WSHandler) sendError(connID, message string) {
	h.hub.Unicast(connID, app.Event{Type: app.EventError, Payload: message})
}
