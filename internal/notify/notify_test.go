package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/scriptkit/internal/config"
	"github.com/bashhack/scriptkit/internal/errors"
)

type fakeTelegram struct {
	messages  []*bot.SendMessageParams
	documents []*bot.SendDocumentParams
	uploaded  string
	err       error
}

func (f *fakeTelegram) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.messages = append(f.messages, p)
	return &models.Message{}, f.err
}

func (f *fakeTelegram) SendDocument(_ context.Context, p *bot.SendDocumentParams) (*models.Message, error) {
	f.documents = append(f.documents, p)
	if upload, ok := p.Document.(*models.InputFileUpload); ok {
		data, _ := io.ReadAll(upload.Data)
		f.uploaded = string(data)
	}
	return &models.Message{}, f.err
}

type fakeDiscord struct {
	recipient string
	channelID string
	sent      []*discordgo.MessageSend
	uploaded  string
	createErr error
	sendErr   error
}

func (f *fakeDiscord) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.recipient = recipientID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &discordgo.Channel{ID: f.channelID}, nil
}

func (f *fakeDiscord) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.sent = append(f.sent, data)
	for _, file := range data.Files {
		b, _ := io.ReadAll(file.Reader)
		f.uploaded = string(b)
	}
	return &discordgo.Message{}, f.sendErr
}

func writeAttachment(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("report body"), 0644))
	return path
}

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Kind
		wantErr bool
	}{
		"telegram":       {input: "telegram", want: KindTelegram},
		"discord mixed":  {input: "Discord", want: KindDiscord},
		"twitter":        {input: "twitter", wantErr: true},
		"empty rejected": {input: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseKind(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	file := &config.File{
		Telegram: config.TelegramSection{Token: "123456:ABC-DEF"},
		Discord:  config.DiscordSection{Token: "discord-token"},
	}

	n, err := New("telegram", file, nil)
	require.NoError(t, err)
	assert.IsType(t, &Telegram{}, n)

	n, err = New("discord", file, nil)
	require.NoError(t, err)
	assert.IsType(t, &Discord{}, n)

	_, err = New("telegram", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotifyFailed))

	_, err = New("discord", &config.File{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotifyFailed))

	_, err = New("pager", file, nil)
	require.Error(t, err)
}

func TestTelegramNotify(t *testing.T) {
	t.Run("text message to numeric chat", func(t *testing.T) {
		api := &fakeTelegram{}
		tg := &Telegram{api: api, logger: loggerOrNop(nil)}

		require.NoError(t, tg.Notify(context.Background(), "-100123", "Hellooo there!", ""))
		require.Len(t, api.messages, 1)
		assert.Empty(t, api.documents)
		assert.Equal(t, int64(-100123), api.messages[0].ChatID)
		assert.Equal(t, "Hellooo there!", api.messages[0].Text)
	})

	t.Run("channel username kept as string", func(t *testing.T) {
		api := &fakeTelegram{}
		tg := &Telegram{api: api, logger: loggerOrNop(nil)}

		require.NoError(t, tg.Notify(context.Background(), "@ops", "hi", ""))
		assert.Equal(t, "@ops", api.messages[0].ChatID)
	})

	t.Run("attachment sent as document", func(t *testing.T) {
		api := &fakeTelegram{}
		tg := &Telegram{api: api, logger: loggerOrNop(nil)}
		path := writeAttachment(t)

		require.NoError(t, tg.Notify(context.Background(), "42", "see file", path))
		assert.Empty(t, api.messages)
		require.Len(t, api.documents, 1)
		assert.Equal(t, "see file", api.documents[0].Caption)
		assert.Equal(t, "report body", api.uploaded)
	})

	t.Run("api error wrapped", func(t *testing.T) {
		api := &fakeTelegram{err: fmt.Errorf("chat not found")}
		tg := &Telegram{api: api, logger: loggerOrNop(nil)}

		err := tg.Notify(context.Background(), "42", "hi", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotifyFailed))
		assert.Contains(t, err.Error(), "chat not found")
	})

	t.Run("missing attachment", func(t *testing.T) {
		api := &fakeTelegram{}
		tg := &Telegram{api: api, logger: loggerOrNop(nil)}

		err := tg.Notify(context.Background(), "42", "hi", filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotifyFailed))
		assert.Empty(t, api.messages)
		assert.Empty(t, api.documents)
	})

	t.Run("missing recipient", func(t *testing.T) {
		tg := &Telegram{api: &fakeTelegram{}, logger: loggerOrNop(nil)}
		assert.Error(t, tg.Notify(context.Background(), "", "hi", ""))
	})
}

func TestDiscordNotify(t *testing.T) {
	t.Run("text message", func(t *testing.T) {
		api := &fakeDiscord{channelID: "dm-1"}
		d := &Discord{api: api, logger: loggerOrNop(nil)}

		require.NoError(t, d.Notify(context.Background(), "user-7", "Hellooo there!", ""))
		assert.Equal(t, "user-7", api.recipient)
		assert.Equal(t, "dm-1", api.channelID)
		require.Len(t, api.sent, 1)
		assert.Equal(t, "Hellooo there!", api.sent[0].Content)
		assert.Empty(t, api.sent[0].Files)
	})

	t.Run("attachment", func(t *testing.T) {
		api := &fakeDiscord{channelID: "dm-1"}
		d := &Discord{api: api, logger: loggerOrNop(nil)}

		require.NoError(t, d.Notify(context.Background(), "user-7", "see file", writeAttachment(t)))
		require.Len(t, api.sent[0].Files, 1)
		assert.Equal(t, "report.txt", api.sent[0].Files[0].Name)
		assert.Equal(t, "report body", api.uploaded)
	})

	t.Run("channel create fails", func(t *testing.T) {
		api := &fakeDiscord{createErr: fmt.Errorf("unknown user")}
		d := &Discord{api: api, logger: loggerOrNop(nil)}

		err := d.Notify(context.Background(), "user-7", "hi", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotifyFailed))
		assert.Empty(t, api.sent)
	})

	t.Run("send fails", func(t *testing.T) {
		api := &fakeDiscord{channelID: "dm-1", sendErr: fmt.Errorf("missing access")}
		d := &Discord{api: api, logger: loggerOrNop(nil)}

		err := d.Notify(context.Background(), "user-7", "hi", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotifyFailed))
		assert.Contains(t, err.Error(), "missing access")
	})
}
