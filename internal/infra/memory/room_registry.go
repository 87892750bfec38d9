package memory

import (
	"sync"

	"quiz-room-service/internal/app"
)

// RoomRegistry is the in-memory implementation of app.RoomRegistry. Alongside
// the room map it keeps the connection-to-room index so disconnect cleanup
// never scans every room.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
	conns map[string]string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*app.Room),
		conns: make(map[string]string),
	}
}

func (r *RoomRegistry) GetOrCreate(roomID string) *app.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[roomID]; ok {
		return room
	}
	room := app.NewRoom(roomID)
	r.rooms[roomID] = room
	return room
}

func (r *RoomRegistry) Get(roomID string) (*app.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	return room, ok
}

func (r *RoomRegistry) Bind(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[connID] = roomID
}

func (r *RoomRegistry) Unbind(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, connID)
}

func (r *RoomRegistry) ResolveConn(connID string) (*app.Room, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roomID, ok := r.conns[connID]
	if !ok {
		return nil, "", false
	}
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, "", false
	}
	return room, roomID, true
}

func (r *RoomRegistry) DeleteIfEmpty(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if room.IsEmpty() {
		delete(r.rooms, roomID)
	}
}
