package redis

import (
	"context"
	"sync"
	"time"

	"quiz-room-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// RoomRegistry is a Redis-aware implementation of app.RoomRegistry.
// Notes:
//   - Rooms themselves stay in a local in-memory map, reusing the in-process
//     broadcast path; room state is not shared across instances.
//   - Redis marks room liveness (and could be extended to share rosters or
//     route cross-instance pub/sub).
//   - For true distribution you'd pair this with a pub/sub projector that fans
//     out updates.
type RoomRegistry struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	rooms  map[string]*app.Room
	conns  map[string]string
}

func NewRoomRegistry(client *redis.Client, ttl time.Duration) *RoomRegistry {
	return &RoomRegistry{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
		conns:  make(map[string]string),
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
	// best-effort liveness marker
	_ = r.client.Set(context.Background(), r.key(roomID), "1", r.ttl).Err()
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
		_ = r.client.Del(context.Background(), r.key(roomID)).Err()
	}
}

func (r *RoomRegistry) key(roomID string) string {
	return "room:live:" + roomID
}
