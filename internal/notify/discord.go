package notify

import (
	"context"
	"path/filepath"

	"github.com/bwmarrin/discordgo"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/errors"
)

// discordAPI is the subset of *discordgo.Session used for direct messages
type discordAPI interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord sends direct messages through a Discord bot. Recipients are user IDs.
type Discord struct {
	api    discordAPI
	logger common.Logger
}

// NewDiscord creates a Discord notifier for the bot token.
func NewDiscord(token string, logger common.Logger) (*Discord, error) {
	if token == "" {
		return nil, errors.Wrap(errors.ErrNotifyFailed, "discord token is not configured")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotifyFailed, "failed to create Discord session: %v", err)
	}

	return &Discord{api: session, logger: loggerOrNop(logger)}, nil
}

// Notify opens the DM channel with the user and posts text with an optional file.
func (d *Discord) Notify(ctx context.Context, to, text, attachmentPath string) error {
	if to == "" {
		return errors.Wrap(errors.ErrNotifyFailed, "discord recipient is required")
	}

	file, err := openAttachment(attachmentPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	channel, err := d.api.UserChannelCreate(to, discordgo.WithContext(ctx))
	if err != nil {
		d.logger.Error("Discord DM channel for %s failed: %v", to, err)
		return errors.Wrapf(errors.ErrNotifyFailed, "discord channel for %s: %v", to, err)
	}

	msg := &discordgo.MessageSend{Content: text}
	if file != nil {
		msg.Files = []*discordgo.File{{
			Name:        filepath.Base(attachmentPath),
			ContentType: "application/octet-stream",
			Reader:      file,
		}}
	}

	if _, err := d.api.ChannelMessageSendComplex(channel.ID, msg, discordgo.WithContext(ctx)); err != nil {
		d.logger.Error("Discord message to %s failed: %v", to, err)
		return errors.Wrapf(errors.ErrNotifyFailed, "discord to %s: %v", to, err)
	}

	d.logger.Info("Discord message sent to %s", to)
	return nil
}
