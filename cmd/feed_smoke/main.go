package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"viewerhub/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// Publishes synthetic chat events to the redis feed channel so a running
// instance can be watched accruing end to end.
func main() {
	channelID := flag.String("channel-id", "smoke-viewer", "identity key to publish as")
	name := flag.String("name", "Smoke Viewer", "display name")
	count := flag.Int("count", 5, "number of events")
	interval := flag.Duration("interval", 2*time.Second, "delay between events")
	feed := flag.String("feed", "chat:events", "redis channel")
	flag.Parse()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	payload, err := json.Marshal(domain.ChatEvent{
		ChannelID:   *channelID,
		DisplayName: *name,
	})
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < *count; i++ {
		if err := client.Publish(ctx, *feed, payload).Err(); err != nil {
			log.Fatalf("publish: %v", err)
		}
		log.Printf("published event %d/%d to %s", i+1, *count, *feed)
		if i < *count-1 {
			time.Sleep(*interval)
		}
	}
}
