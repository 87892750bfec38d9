package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRoomRegistrySetsAndClearsLivenessKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewRoomRegistry(client, time.Minute)

	_ = registry.GetOrCreate("R1")
	if !mr.Exists("room:live:R1") {
		t.Fatalf("expected redis liveness key to be set")
	}

	registry.DeleteIfEmpty("R1")
	if mr.Exists("room:live:R1") {
		t.Fatalf("expected redis liveness key to be removed")
	}
}

func TestRoomRegistryConnIndex(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	registry := NewRoomRegistry(client, time.Minute)

	registry.GetOrCreate("R1")
	registry.Bind("c1", "R1")

	if _, roomID, ok := registry.ResolveConn("c1"); !ok || roomID != "R1" {
		t.Fatalf("expected c1 bound to R1")
	}

	registry.Unbind("c1")
	if _, _, ok := registry.ResolveConn("c1"); ok {
		t.Fatalf("expected binding gone")
	}
}
