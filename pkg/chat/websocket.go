// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

const (
	EventJoinRoom       = "join_room"
	EventLeaveRoom      = "leave_room"
	EventSendMessage    = "send_message"
	EventHistory        = "history"
	EventReceiveMessage = "receive_message"
	EventError          = "error"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxFrameSize   = 16 * 1024
	outboundBuffer = 64
)

// Frame is the envelope of every websocket message in both directions.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

type errorPayload struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

type historyPayload struct {
	ConversationID string `json:"conversationId"`
	Messages       any    `json:"messages"`
}

// Hub serves the live chat channel. Each connection joins conversation rooms
// and receives their messages as they are sent.
type Hub struct {
	service  ServiceInterface
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	wg      sync.WaitGroup

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("failed to upgrade websocket connection: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	c := &client{
		hub:    h,
		conn:   conn,
		actor:  actor,
		send:   make(chan Frame, outboundBuffer),
		rooms:  make(map[string]*Room),
		ctx:    ctx,
		cancel: cancel,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.wg.Add(1)
	h.mu.Unlock()

	h.logger.Debugf("websocket client connected: %s", actor.AccountID)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		h.wg.Done()
		h.logger.Debugf("websocket client disconnected: %s", actor.AccountID)
	}()

	c.run()
}

// Shutdown closes every connection and waits for their handlers to return.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	for c := range h.clients {
		c.cancel()
		_ = c.conn.Close()
	}
	h.mu.Unlock()

	h.wg.Wait()
}

type client struct {
	hub   *Hub
	conn  *websocket.Conn
	actor identity.Actor
	send  chan Frame

	// rooms is only touched by the read loop.
	rooms      map[string]*Room
	forwarders sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

func (c *client) run() {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop()
	}()

	c.readLoop()

	c.cancel()
	for id, room := range c.rooms {
		_ = room.Close()
		delete(c.rooms, id)
	}
	c.forwarders.Wait()
	close(c.send)
	<-writerDone

	_ = c.conn.Close()
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame inboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Errorf("websocket connection error: %v", err)
			}
			return
		}

		c.dispatch(frame)
	}
}

func (c *client) dispatch(frame inboundFrame) {
	ctx, span := c.hub.tracer.Start(c.ctx, "chat.Hub.dispatch")
	defer span.End()

	switch frame.Event {
	case EventJoinRoom:
		var conversationID string
		if err := json.Unmarshal(frame.Data, &conversationID); err != nil || conversationID == "" {
			c.emitError(apperr.Validation("join_room expects a conversation id"))
			return
		}
		c.join(ctx, conversationID)
	case EventLeaveRoom:
		var conversationID string
		if err := json.Unmarshal(frame.Data, &conversationID); err != nil {
			c.emitError(apperr.Validation("leave_room expects a conversation id"))
			return
		}
		c.leave(conversationID)
	case EventSendMessage:
		var payload sendMessagePayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			c.emitError(apperr.Validation("send_message expects a conversationId and content"))
			return
		}
		// the sender is always the authenticated account
		if _, err := c.hub.service.SendMessage(ctx, c.actor, payload.ConversationID, payload.Content); err != nil {
			c.emitError(err)
		}
	default:
		c.emitError(apperr.Validation("unknown event %q", frame.Event))
	}
}

func (c *client) join(ctx context.Context, conversationID string) {
	c.leave(conversationID)

	room, err := c.hub.service.JoinRoom(ctx, c.actor, conversationID)
	if err != nil {
		c.emitError(err)
		return
	}
	c.rooms[conversationID] = room

	c.emit(Frame{Event: EventHistory, Data: historyPayload{ConversationID: conversationID, Messages: room.History}})

	c.forwarders.Add(1)
	go func() {
		defer c.forwarders.Done()

		for payload := range room.Updates() {
			msg, ok := room.Accept(payload)
			if !ok {
				continue
			}
			c.emit(Frame{Event: EventReceiveMessage, Data: msg})
		}
	}()
}

func (c *client) leave(conversationID string) {
	room, ok := c.rooms[conversationID]
	if !ok {
		return
	}

	_ = room.Close()
	delete(c.rooms, conversationID)
}

func (c *client) emit(f Frame) {
	select {
	case c.send <- f:
	case <-c.ctx.Done():
	}
}

func (c *client) emitError(err error) {
	c.emit(Frame{Event: EventError, Data: errorPayload{Kind: apperr.KindOf(err), Message: apperr.MessageOf(err)}})
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	failed := false
	for {
		select {
		case f, ok := <-c.send:
			if !ok {
				if !failed {
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				}
				return
			}
			if failed {
				continue
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				c.hub.logger.Debugf("failed to write websocket frame: %v", err)
				failed = true
				c.cancel()
				_ = c.conn.Close()
			}
		case <-ticker.C:
			if failed {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
				c.cancel()
				_ = c.conn.Close()
			}
		}
	}
}

func NewHub(service ServiceInterface, allowedOrigins []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Hub {
	h := new(Hub)

	h.service = service
	h.clients = make(map[*client]struct{})
	h.upgrader = websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      originChecker(allowedOrigins),
	}

	h.tracer = tracer
	h.monitor = monitor
	h.logger = logger

	return h
}

// originChecker mirrors the CORS policy: "*" allows any origin.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
