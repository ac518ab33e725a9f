package ingest

import "viewerhub/internal/domain"

// Source is one upstream chat feed. Events delivers messages in arrival
// order and is closed when the feed ends; Close tears the connection down.
// Delivery is at-least-once — duplicates and stale messages are expected and
// handled by the accrual clamp.
type Source interface {
	Events() <-chan domain.ChatEvent
	Close() error
}
