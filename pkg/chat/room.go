// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package chat

import (
	"encoding/json"

	"github.com/canonical/edumart/internal/pubsub"
	"github.com/canonical/edumart/internal/types"
)

func topic(conversationID string) string {
	return "conversation:" + conversationID
}

// Room is a live view of one conversation. The subscription is opened before
// History is read, so a message sent in between shows up in both and is
// dropped from the live stream.
type Room struct {
	ConversationID string
	History        []*types.Message

	sub  pubsub.SubscriptionInterface
	seen map[string]struct{}
}

// Updates yields raw live payloads until the room is closed.
func (r *Room) Updates() <-chan []byte {
	return r.sub.Messages()
}

// Accept decodes a live payload, reporting false for undecodable payloads and
// messages already delivered as history.
func (r *Room) Accept(payload []byte) (*types.Message, bool) {
	msg := new(types.Message)
	if err := json.Unmarshal(payload, msg); err != nil {
		return nil, false
	}

	if _, ok := r.seen[msg.ID]; ok {
		delete(r.seen, msg.ID)
		return nil, false
	}

	return msg, true
}

func (r *Room) Close() error {
	return r.sub.Close()
}

func newRoom(conversationID string, sub pubsub.SubscriptionInterface, history []*types.Message) *Room {
	r := &Room{
		ConversationID: conversationID,
		History:        history,
		sub:            sub,
		seen:           make(map[string]struct{}, len(history)),
	}

	for _, m := range history {
		r.seen[m.ID] = struct{}{}
	}

	return r
}
