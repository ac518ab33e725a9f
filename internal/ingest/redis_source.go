package ingest

import (
	"context"
	"encoding/json"
	"time"

	"viewerhub/internal/domain"
	"viewerhub/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// RedisSource reads chat events published as JSON on a Pub/Sub channel.
type RedisSource struct {
	client *redis.Client
	sub    *redis.PubSub
	events chan domain.ChatEvent
}

func NewRedisSource(addr, password string, db int, channel string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	s := &RedisSource{
		client: client,
		sub:    client.Subscribe(context.Background(), channel),
		events: make(chan domain.ChatEvent, 64),
	}
	go s.pump()

	logger.Info("subscribed to chat feed", "redis", addr, "channel", channel)
	return s, nil
}

func (s *RedisSource) pump() {
	for msg := range s.sub.Channel() {
		var ev domain.ChatEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			logger.Warn("undecodable feed payload, skipping", "error", err)
			eventsSkipped.WithLabelValues("malformed").Inc()
			continue
		}
		s.events <- ev
	}
	close(s.events)
}

func (s *RedisSource) Events() <-chan domain.ChatEvent {
	return s.events
}

func (s *RedisSource) Close() error {
	if err := s.sub.Close(); err != nil {
		return err
	}
	return s.client.Close()
}
