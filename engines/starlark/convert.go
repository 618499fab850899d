package starlark

import (
	"fmt"
	"slices"
	"strings"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/florabot/evalengine/chat"
)

// convertToStarlarkValue converts a Go value from the static registry into a
// Starlark value.
func convertToStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		// Registry entries may already be Starlark values or builtins.
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = convertToStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, v := range val {
			starlarkVal, err := convertToStarlarkValue(v)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// Host handle wrappers. Each value type becomes an immutable struct so
// evaluated code can use attribute access.

func userStruct(u chat.User) starlarkLib.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"id":   starlarkLib.String(u.ID),
		"name": starlarkLib.String(u.Name),
		"bot":  starlarkLib.Bool(u.Bot),
	})
}

func channelStruct(c chat.Channel) starlarkLib.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"id":       starlarkLib.String(c.ID),
		"name":     starlarkLib.String(c.Name),
		"guild_id": starlarkLib.String(c.GuildID),
	})
}

func guildStruct(g chat.Guild) starlarkLib.Value {
	channels := make([]starlarkLib.Value, len(g.Channels))
	for i, c := range g.Channels {
		channels[i] = channelStruct(c)
	}
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"id":       starlarkLib.String(g.ID),
		"name":     starlarkLib.String(g.Name),
		"channels": starlarkLib.NewList(channels),
	})
}

func messageStruct(m chat.Message) starlarkLib.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"id":         starlarkLib.String(m.ID),
		"channel_id": starlarkLib.String(m.ChannelID),
		"content":    starlarkLib.String(m.Content),
		"author":     userStruct(m.Author),
	})
}

func hostStruct(h chat.Host) starlarkLib.Value {
	guilds := h.Guilds()
	users := h.Users()
	channels := h.Channels()

	guildVals := make([]starlarkLib.Value, len(guilds))
	for i, g := range guilds {
		guildVals[i] = guildStruct(g)
	}
	userVals := make([]starlarkLib.Value, len(users))
	for i, u := range users {
		userVals[i] = userStruct(u)
	}
	channelVals := make([]starlarkLib.Value, len(channels))
	for i, c := range channels {
		channelVals[i] = channelStruct(c)
	}

	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlarkLib.StringDict{
		"guilds":   starlarkLib.NewList(guildVals),
		"users":    starlarkLib.NewList(userVals),
		"channels": starlarkLib.NewList(channelVals),
	})
}

// grabber returns a builtin that, when called, grabs an item by ID from a
// list of objects with an ID.
func grabber[T any](name string, items []T, id func(T) string, wrap func(T) starlarkLib.Value) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin(name, func(
		_ *starlarkLib.Thread,
		b *starlarkLib.Builtin,
		args starlarkLib.Tuple,
		kwargs []starlarkLib.Tuple,
	) (starlarkLib.Value, error) {
		var want string
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &want); err != nil {
			return nil, err
		}
		for _, item := range items {
			if id(item) == want {
				return wrap(item), nil
			}
		}
		return starlarkLib.None, nil
	})
}

// dirBuiltin is dir(), but without dunder names.
func dirBuiltin() *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin("dir", func(
		_ *starlarkLib.Thread,
		b *starlarkLib.Builtin,
		args starlarkLib.Tuple,
		kwargs []starlarkLib.Tuple,
	) (starlarkLib.Value, error) {
		var v starlarkLib.Value
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
			return nil, err
		}

		var names []string
		switch x := v.(type) {
		case starlarkLib.HasAttrs:
			names = x.AttrNames()
		case starlarkLib.IterableMapping:
			for _, k := range x.Items() {
				if s, ok := k[0].(starlarkLib.String); ok {
					names = append(names, string(s))
				}
			}
		}

		filtered := make([]starlarkLib.Value, 0, len(names))
		slices.Sort(names)
		for _, n := range names {
			if strings.HasPrefix(n, "__") && strings.HasSuffix(n, "__") {
				continue
			}
			filtered = append(filtered, starlarkLib.String(n))
		}
		return starlarkLib.NewList(filtered), nil
	})
}
