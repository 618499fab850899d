// Package chat defines the narrow boundary between the evaluation engine and
// the hosting chat platform. The engine never talks to a platform SDK
// directly; it sees only these interfaces and value types.
package chat

import "context"

// Marker is a lightweight indicator attached to the originating message to
// signal the outcome of an evaluation.
type Marker string

const (
	// MarkerSuccess is attached after a clean run.
	MarkerSuccess Marker = "\U0001F33A" // hibiscus

	// MarkerFailure is attached after the executed unit raised.
	MarkerFailure Marker = "\U0001F335" // cactus
)

// User identifies one platform account.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Channel is one conversation inside a guild.
type Channel struct {
	ID      string
	Name    string
	GuildID string
}

// Guild is one server-level scope.
type Guild struct {
	ID       string
	Name     string
	Channels []Channel
}

// Message is one inbound or outbound chat message.
type Message struct {
	ID        string
	ChannelID string
	Content   string
	Author    User
}

// Host exposes the application-wide object lists the evaluated code may
// inspect. Implementations snapshot the platform session state.
type Host interface {
	Guilds() []Guild
	Users() []User

	// Channels returns every channel of every guild, flattened.
	Channels() []Channel
}

// Replier sends content back to a conversation.
type Replier interface {
	Send(ctx context.Context, channelID string, content string) (*Message, error)

	// SendFile uploads a local file as an attachment.
	SendFile(ctx context.Context, channelID string, path string) (*Message, error)
}

// Reactor attaches outcome markers to messages. Implementations surface
// permission failures as errors; the engine swallows them.
type Reactor interface {
	React(ctx context.Context, channelID string, messageID string, marker Marker) error
}

// Translator resolves user-facing notice text by key.
type Translator interface {
	Translate(key string, args ...any) string
}

// Invocation bundles everything the engine needs from the platform for one
// command invocation.
type Invocation struct {
	Host       Host
	Message    *Message
	Channel    *Channel
	Guild      *Guild
	Invoker    *User
	Replier    Replier
	Reactor    Reactor
	Translator Translator
}

// Reply sends text to the conversation the invocation originated from.
func (inv *Invocation) Reply(ctx context.Context, content string) (*Message, error) {
	return inv.Replier.Send(ctx, inv.Channel.ID, content)
}

// ReplyFile uploads a local file to the originating conversation.
func (inv *Invocation) ReplyFile(ctx context.Context, path string) (*Message, error) {
	return inv.Replier.SendFile(ctx, inv.Channel.ID, path)
}
