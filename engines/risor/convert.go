package risor

import (
	"context"
	"slices"
	"strings"

	"github.com/risor-io/risor/object"

	"github.com/florabot/evalengine/chat"
)

// Host handle wrappers. Risor proxies plain Go maps, so evaluated code can
// index them; builtins that hand objects back construct them natively.

func userMap(u chat.User) map[string]any {
	return map[string]any{
		"id":   u.ID,
		"name": u.Name,
		"bot":  u.Bot,
	}
}

func channelMap(c chat.Channel) map[string]any {
	return map[string]any{
		"id":       c.ID,
		"name":     c.Name,
		"guild_id": c.GuildID,
	}
}

func guildMap(g chat.Guild) map[string]any {
	channels := make([]any, len(g.Channels))
	for i, c := range g.Channels {
		channels[i] = channelMap(c)
	}
	return map[string]any{
		"id":       g.ID,
		"name":     g.Name,
		"channels": channels,
	}
}

func messageMap(m chat.Message) map[string]any {
	return map[string]any{
		"id":         m.ID,
		"channel_id": m.ChannelID,
		"content":    m.Content,
		"author":     userMap(m.Author),
	}
}

func hostMap(h chat.Host) map[string]any {
	guilds := h.Guilds()
	users := h.Users()
	channels := h.Channels()

	guildVals := make([]any, len(guilds))
	for i, g := range guilds {
		guildVals[i] = guildMap(g)
	}
	userVals := make([]any, len(users))
	for i, u := range users {
		userVals[i] = userMap(u)
	}
	channelVals := make([]any, len(channels))
	for i, c := range channels {
		channelVals[i] = channelMap(c)
	}

	return map[string]any{
		"guilds":   guildVals,
		"users":    userVals,
		"channels": channelVals,
	}
}

// toObject converts a plain Go value produced by the wrappers above into a
// Risor object for builtin return values.
func toObject(v any) object.Object {
	switch val := v.(type) {
	case nil:
		return object.Nil
	case bool:
		return object.NewBool(val)
	case string:
		return object.NewString(val)
	case int:
		return object.NewInt(int64(val))
	case int64:
		return object.NewInt(val)
	case float64:
		return object.NewFloat(val)
	case []any:
		items := make([]object.Object, len(val))
		for i, item := range val {
			items[i] = toObject(item)
		}
		return object.NewList(items)
	case map[string]any:
		items := make(map[string]object.Object, len(val))
		for k, item := range val {
			items[k] = toObject(item)
		}
		return object.NewMap(items)
	default:
		return object.Errorf("type error: unsupported value %T", v)
	}
}

// printBuiltin replaces the default print so the unit's output stream lands
// in the per-invocation buffer instead of the process stdout.
func printBuiltin(stdout *strings.Builder) *object.Builtin {
	return object.NewBuiltin("print", func(_ context.Context, args ...object.Object) object.Object {
		parts := make([]string, len(args))
		for i, arg := range args {
			if s, ok := arg.(*object.String); ok {
				parts[i] = s.Value()
			} else {
				parts[i] = arg.Inspect()
			}
		}
		stdout.WriteString(strings.Join(parts, " "))
		stdout.WriteByte('\n')
		return object.Nil
	})
}

// grabber returns a builtin that, when called, grabs an item by ID from a
// list of objects with an ID.
func grabber[T any](name string, items []T, id func(T) string, wrap func(T) map[string]any) *object.Builtin {
	return object.NewBuiltin(name, func(_ context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.Errorf("type error: %s() takes exactly 1 argument (%d given)", name, len(args))
		}
		want, err := object.AsString(args[0])
		if err != nil {
			return err
		}
		for _, item := range items {
			if id(item) == want {
				return toObject(wrap(item))
			}
		}
		return object.Nil
	})
}

// dirBuiltin lists the keys or attributes of a value, without dunder names.
func dirBuiltin() *object.Builtin {
	return object.NewBuiltin("dir", func(_ context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.Errorf("type error: dir() takes exactly 1 argument (%d given)", len(args))
		}

		var names []string
		if m, ok := args[0].(*object.Map); ok {
			for k := range m.Value() {
				names = append(names, k)
			}
		}

		slices.Sort(names)
		filtered := make([]object.Object, 0, len(names))
		for _, n := range names {
			if strings.HasPrefix(n, "__") && strings.HasSuffix(n, "__") {
				continue
			}
			filtered = append(filtered, object.NewString(n))
		}
		return object.NewList(filtered)
	})
}

// invocationMap is the invocation-context handle: the originating message
// with its channel, guild and author, plus the reply helpers, bundled the way
// a command framework's context object is. Built as an object map directly so
// the helper builtins can nest inside it.
func invocationMap(ctx context.Context, inv *chat.Invocation) *object.Map {
	return object.NewMap(map[string]object.Object{
		"message": toObject(messageMap(*inv.Message)),
		"channel": toObject(channelMap(*inv.Channel)),
		"guild":   toObject(guildMap(*inv.Guild)),
		"author":  toObject(userMap(*inv.Invoker)),
		"send":    sendBuiltin(ctx, inv),
		"upload":  uploadBuiltin(ctx, inv),
	})
}

func sendBuiltin(ctx context.Context, inv *chat.Invocation) *object.Builtin {
	return object.NewBuiltin("send", func(_ context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.Errorf("type error: send() takes exactly 1 argument (%d given)", len(args))
		}
		content, err := object.AsString(args[0])
		if err != nil {
			return err
		}
		sent, sendErr := inv.Reply(ctx, content)
		if sendErr != nil {
			return object.Errorf("send: %v", sendErr)
		}
		return toObject(messageMap(*sent))
	})
}

func uploadBuiltin(ctx context.Context, inv *chat.Invocation) *object.Builtin {
	return object.NewBuiltin("upload", func(_ context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.Errorf("type error: upload() takes exactly 1 argument (%d given)", len(args))
		}
		path, err := object.AsString(args[0])
		if err != nil {
			return err
		}
		sent, sendErr := inv.ReplyFile(ctx, path)
		if sendErr != nil {
			return object.Errorf("upload: %v", sendErr)
		}
		return toObject(messageMap(*sent))
	})
}
