package ingest

import (
	"encoding/json"
	"time"

	"viewerhub/internal/domain"
	"viewerhub/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// WebsocketSource dials an upstream chat gateway and reads JSON frames, one
// chat event per frame. A read failure ends the feed; the process owner
// decides whether to restart.
type WebsocketSource struct {
	conn   *websocket.Conn
	events chan domain.ChatEvent
	done   chan struct{}
}

func NewWebsocketSource(url string) (*WebsocketSource, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	s := &WebsocketSource{
		conn:   conn,
		events: make(chan domain.ChatEvent, 64),
		done:   make(chan struct{}),
	}
	go s.readPump()
	go s.pingPump()

	logger.Info("connected to chat gateway", "url", url)
	return s, nil
}

func (s *WebsocketSource) readPump() {
	defer close(s.events)
	defer close(s.done)

	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			logger.Warn("chat gateway read ended", "error", err)
			return
		}

		var ev domain.ChatEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			logger.Warn("undecodable feed payload, skipping", "error", err)
			eventsSkipped.WithLabelValues("malformed").Inc()
			continue
		}
		s.events <- ev
	}
}

func (s *WebsocketSource) pingPump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (s *WebsocketSource) Events() <-chan domain.ChatEvent {
	return s.events
}

func (s *WebsocketSource) Close() error {
	return s.conn.Close()
}
