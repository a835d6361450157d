//go:build ignore

// Публикует событие изменения региона и ждёт, пока воркер положит статистику в кеш.
//
//	go run scripts/test_publish.go -region <uuid>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type regionEvent struct {
	Type     string    `json:"type"`
	RegionID string    `json:"region_id"`
	At       time.Time `json:"at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	regionID := flag.String("region", "", "Region ID (UUID)")
	eventType := flag.String("type", "updated", "created|updated|deleted")
	flag.Parse()

	if _, err := uuid.Parse(*regionID); err != nil {
		log.Fatalf("-region must be a UUID: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	statsKey := "region:stats:" + *regionID
	client.Del(ctx, statsKey)

	data, err := json.Marshal(regionEvent{Type: *eventType, RegionID: *regionID, At: time.Now().UTC()})
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:region:changed",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published: stream:region:changed %s (%s %s)\n", id, *eventType, *regionID)
	if *eventType == "deleted" {
		return
	}

	fmt.Printf("Waiting for %s ...\n", statsKey)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for stats")
			return
		case <-ticker.C:
			raw, err := client.Get(ctx, statsKey).Bytes()
			if err != nil {
				continue
			}
			var stats map[string]interface{}
			if err := json.Unmarshal(raw, &stats); err != nil {
				continue
			}
			pretty, _ := json.MarshalIndent(stats, "", "  ")
			fmt.Printf("%s\n", pretty)
			return
		}
	}
}
