// Package chattest provides in-memory chat collaborators for tests.
package chattest

import (
	"context"
	"fmt"
	"sync"

	"github.com/florabot/evalengine/chat"
)

// Host is a fixed-snapshot chat.Host.
type Host struct {
	GuildList []chat.Guild
	UserList  []chat.User
}

func (h *Host) Guilds() []chat.Guild { return h.GuildList }
func (h *Host) Users() []chat.User   { return h.UserList }

func (h *Host) Channels() []chat.Channel {
	var all []chat.Channel
	for _, g := range h.GuildList {
		all = append(all, g.Channels...)
	}
	return all
}

// Replier records every message sent through it.
type Replier struct {
	mu    sync.Mutex
	Sent  []chat.Message
	Files []string

	// Err, when set, fails every send.
	Err error
}

func (r *Replier) Send(_ context.Context, channelID, content string) (*chat.Message, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := chat.Message{
		ID:        fmt.Sprintf("sent-%d", len(r.Sent)+1),
		ChannelID: channelID,
		Content:   content,
	}
	r.Sent = append(r.Sent, msg)
	return &msg, nil
}

func (r *Replier) SendFile(_ context.Context, channelID, path string) (*chat.Message, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Files = append(r.Files, path)
	msg := chat.Message{
		ID:        fmt.Sprintf("file-%d", len(r.Files)),
		ChannelID: channelID,
	}
	return &msg, nil
}

// LastContent returns the body of the most recent message, or "".
func (r *Replier) LastContent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return ""
	}
	return r.Sent[len(r.Sent)-1].Content
}

// Reactor records attached markers.
type Reactor struct {
	mu      sync.Mutex
	Markers []chat.Marker

	// Err, when set, fails every reaction.
	Err error
}

func (r *Reactor) React(_ context.Context, _, _ string, marker chat.Marker) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Markers = append(r.Markers, marker)
	return nil
}

// Attached returns the markers attached so far.
func (r *Reactor) Attached() []chat.Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]chat.Marker(nil), r.Markers...)
}

// NewInvocation assembles a complete invocation over the given fakes, with a
// small default host topology.
func NewInvocation(replier *Replier, reactor *Reactor) *chat.Invocation {
	general := chat.Channel{ID: "100", Name: "general", GuildID: "1"}
	lab := chat.Channel{ID: "101", Name: "lab", GuildID: "1"}
	guild := chat.Guild{ID: "1", Name: "workshop", Channels: []chat.Channel{general, lab}}

	owner := chat.User{ID: "2", Name: "dev"}
	robot := chat.User{ID: "3", Name: "florabot", Bot: true}

	host := &Host{
		GuildList: []chat.Guild{guild},
		UserList:  []chat.User{owner, robot},
	}

	msg := chat.Message{ID: "9000", ChannelID: general.ID, Content: "!eval", Author: owner}

	return &chat.Invocation{
		Host:       host,
		Message:    &msg,
		Channel:    &general,
		Guild:      &guild,
		Invoker:    &owner,
		Replier:    replier,
		Reactor:    reactor,
		Translator: chat.NewTranslator(),
	}
}
