package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florabot/evalengine/chat"
	"github.com/florabot/evalengine/chat/chattest"
)

func TestTranslatorNotices(t *testing.T) {
	t.Parallel()

	tr := chat.NewTranslator()

	got := tr.Translate(chat.KeyEvalLong, "https://hastebin.com/abc123")
	assert.Equal(t, "The result was too long, so I posted it here: https://hastebin.com/abc123", got)

	assert.Equal(t, "No previous code.", tr.Translate(chat.KeyEvalNoPrevious))
	assert.Contains(t, tr.Translate(chat.KeyEvalHuge), "too large")
	assert.Contains(t, tr.Translate(chat.KeyEvalPastebinDown), "down")
}

func TestInvocationReply(t *testing.T) {
	t.Parallel()

	replier := &chattest.Replier{}
	inv := chattest.NewInvocation(replier, &chattest.Reactor{})

	sent, err := inv.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sent.Content)
	assert.Equal(t, inv.Channel.ID, sent.ChannelID)

	_, err = inv.ReplyFile(context.Background(), "/tmp/out.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/out.txt"}, replier.Files)
}

func TestHostChannelsFlattened(t *testing.T) {
	t.Parallel()

	inv := chattest.NewInvocation(&chattest.Replier{}, &chattest.Reactor{})

	channels := inv.Host.Channels()
	require.Len(t, channels, 2)
	assert.Equal(t, "general", channels[0].Name)
	assert.Equal(t, "lab", channels[1].Name)
}
