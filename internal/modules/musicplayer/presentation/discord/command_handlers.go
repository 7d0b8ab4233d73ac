package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/bot"
	"github.com/arvoh/manabot/internal/modules/musicplayer/application/usecases"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// CommandHandlers holds all voice and playback command handlers.
type CommandHandlers struct {
	voiceChannel  *usecases.VoiceChannelService
	playback      *usecases.PlaybackService
	loader        *usecases.TrackLoaderService
	presence      *bot.Presence
	deleteTrigger bool
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	voiceChannel *usecases.VoiceChannelService,
	playback *usecases.PlaybackService,
	loader *usecases.TrackLoaderService,
	presence *bot.Presence,
	deleteTrigger bool,
) *CommandHandlers {
	return &CommandHandlers{
		voiceChannel:  voiceChannel,
		playback:      playback,
		loader:        loader,
		presence:      presence,
		deleteTrigger: deleteTrigger,
	}
}

// Commands returns the message commands this module provides.
func (h *CommandHandlers) Commands() []*bot.MessageCommand {
	return []*bot.MessageCommand{
		{Name: "join", Aliases: []string{"j"}, Description: "Join your voice channel.", GuildOnly: true, Handler: h.HandleJoin},
		{Name: "leave", Aliases: []string{"l"}, Description: "Leave the voice channel.", GuildOnly: true, Handler: h.HandleLeave},
		{Name: "mute", Aliases: []string{"m"}, Description: "Self-mute the bot.", GuildOnly: true, Handler: h.HandleMute},
		{Name: "unmute", Aliases: []string{"um"}, Description: "Unmute the bot.", GuildOnly: true, Handler: h.HandleUnmute},
		{Name: "deafen", Aliases: []string{"d"}, Description: "Self-deafen the bot.", GuildOnly: true, Handler: h.HandleDeafen},
		{Name: "undeafen", Aliases: []string{"ud"}, Description: "Undeafen the bot.", GuildOnly: true, Handler: h.HandleUndeafen},
		{Name: "play", Aliases: []string{"p"}, Description: "Play audio from a URL.", GuildOnly: true, Handler: h.HandlePlay},
		{Name: "search_and_play", Aliases: []string{"sp"}, Description: "Search and play the first result.", GuildOnly: true, Handler: h.HandleSearchAndPlay},
		{Name: "search_and_play_loop", Aliases: []string{"spl"}, Description: "Search and play the first result on loop.", GuildOnly: true, Handler: h.HandleSearchAndPlayLoop},
		{Name: "stop", Aliases: []string{"st"}, Description: "Stop playback and clear the queue.", GuildOnly: true, Handler: h.HandleStop},
		{Name: "skip", Aliases: []string{"sk"}, Description: "Skip to the next queued track.", GuildOnly: true, Handler: h.HandleSkip},
	}
}

// HandleJoin handles the join command.
func (h *CommandHandlers) HandleJoin(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	guildID, userID, err := parseIDs(m)
	if err != nil {
		return err
	}

	output, err := h.voiceChannel.Join(context.Background(), usecases.JoinInput{
		GuildID: guildID,
		UserID:  userID,
	})
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.reply(msgr, m.ChannelID, fmt.Sprintf("Connected to <#%d>.", output.VoiceChannelID))
	return nil
}

// HandleLeave handles the leave command.
func (h *CommandHandlers) HandleLeave(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	guildID, _, err := parseIDs(m)
	if err != nil {
		return err
	}

	if err := h.voiceChannel.Leave(context.Background(), usecases.LeaveInput{GuildID: guildID}); err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	// Restore the default activity regardless of what was playing before.
	h.presence.Reset()

	h.reply(msgr, m.ChannelID, "Disconnected.")
	return nil
}

// HandleMute handles the mute command.
func (h *CommandHandlers) HandleMute(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	return h.setFlag(m, msgr, h.voiceChannel.SetMute, true, "Muted.")
}

// HandleUnmute handles the unmute command.
func (h *CommandHandlers) HandleUnmute(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	return h.setFlag(m, msgr, h.voiceChannel.SetMute, false, "Unmuted.")
}

// HandleDeafen handles the deafen command.
func (h *CommandHandlers) HandleDeafen(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	return h.setFlag(m, msgr, h.voiceChannel.SetDeafen, true, "Deafened.")
}

// HandleUndeafen handles the undeafen command.
func (h *CommandHandlers) HandleUndeafen(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	return h.setFlag(m, msgr, h.voiceChannel.SetDeafen, false, "Undeafened.")
}

func (h *CommandHandlers) setFlag(
	m *discordgo.MessageCreate,
	msgr bot.Messenger,
	op func(context.Context, usecases.FlagInput) error,
	desired bool,
	success string,
) error {
	h.cleanup(msgr, m)

	guildID, _, err := parseIDs(m)
	if err != nil {
		return err
	}

	if err := op(context.Background(), usecases.FlagInput{GuildID: guildID, Desired: desired}); err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.reply(msgr, m.ChannelID, success)
	return nil
}

// HandlePlay handles the play command. The first token of the argument text
// must be a direct URL.
func (h *CommandHandlers) HandlePlay(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	fields := strings.Fields(args)
	if len(fields) == 0 || !domain.IsURL(fields[0]) {
		h.replyError(msgr, m.ChannelID, ErrMissingURL)
		return nil
	}

	return h.resolveAndPlay(m, msgr, fields[0], false)
}

// HandleSearchAndPlay handles the search_and_play command. The whole argument
// text is the search query.
func (h *CommandHandlers) HandleSearchAndPlay(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	if strings.TrimSpace(args) == "" {
		h.replyError(msgr, m.ChannelID, ErrMissingQuery)
		return nil
	}

	return h.resolveAndPlay(m, msgr, args, false)
}

// HandleSearchAndPlayLoop handles the search_and_play_loop command. The
// resolved track is marked to auto-replay on completion.
func (h *CommandHandlers) HandleSearchAndPlayLoop(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	if strings.TrimSpace(args) == "" {
		h.replyError(msgr, m.ChannelID, ErrMissingQuery)
		return nil
	}

	return h.resolveAndPlay(m, msgr, args, true)
}

func (h *CommandHandlers) resolveAndPlay(m *discordgo.MessageCreate, msgr bot.Messenger, query string, loop bool) error {
	guildID, _, err := parseIDs(m)
	if err != nil {
		return err
	}

	ctx := context.Background()

	loadOutput, err := h.loader.Load(ctx, usecases.LoadInput{
		Query:         query,
		Loop:          loop,
		RequesterName: requesterName(m),
	})
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	playOutput, err := h.playback.Play(ctx, usecases.PlayInput{
		GuildID: guildID,
		Track:   loadOutput.Track,
	})
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.replyEmbed(msgr, m.ChannelID, playEmbed(loadOutput.Track, playOutput))
	return nil
}

// HandleStop handles the stop command.
func (h *CommandHandlers) HandleStop(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	guildID, _, err := parseIDs(m)
	if err != nil {
		return err
	}

	if err := h.playback.Stop(context.Background(), usecases.StopInput{GuildID: guildID}); err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.presence.Reset()

	h.reply(msgr, m.ChannelID, "Stopped playback and cleared the queue.")
	return nil
}

// HandleSkip handles the skip command.
func (h *CommandHandlers) HandleSkip(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	guildID, _, err := parseIDs(m)
	if err != nil {
		return err
	}

	output, err := h.playback.Skip(context.Background(), usecases.SkipInput{GuildID: guildID})
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	if output.Next == nil {
		h.reply(msgr, m.ChannelID, fmt.Sprintf("Skipped **%s**. The queue is empty, stopping.", skippedTitle(output)))
		return nil
	}

	h.reply(msgr, m.ChannelID, fmt.Sprintf("Skipped **%s**. Now playing **%s**.", skippedTitle(output), output.Next.Title))
	return nil
}

// playEmbed composes the reply for a play command, distinguishing the
// now-playing and queued branches and including elapsed time for the
// currently playing track when one exists.
func playEmbed(track *domain.Track, output *usecases.PlayOutput) *discordgo.MessageEmbed {
	if output.Started {
		embed := &discordgo.MessageEmbed{
			Title:       "Now Playing",
			Description: trackLink(track),
			Color:       colorSuccess,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Duration", Value: track.FormattedDuration(), Inline: true},
				{Name: "Requested by", Value: track.RequesterName, Inline: true},
			},
		}
		if track.Loop {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name: "Loop", Value: "enabled", Inline: true,
			})
		}
		if track.ArtworkURL != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.ArtworkURL}
		}
		return embed
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Queued",
		Description: trackLink(track),
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Position", Value: fmt.Sprintf("#%d", output.QueuePosition), Inline: true},
			{Name: "Requested by", Value: track.RequesterName, Inline: true},
		},
	}
	if output.Current != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Currently playing",
			Value: fmt.Sprintf("%s (%s / %s)",
				output.Current.Title,
				domain.FormatDuration(output.Elapsed),
				output.Current.FormattedDuration(),
			),
		})
	}
	return embed
}

func trackLink(track *domain.Track) string {
	if track.URI != "" {
		return fmt.Sprintf("[%s](%s)", track.Title, track.URI)
	}
	return fmt.Sprintf("**%s**", track.Title)
}

func skippedTitle(output *usecases.SkipOutput) string {
	if output.Skipped != nil {
		return output.Skipped.Title
	}
	return "nothing"
}

func requesterName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author != nil {
		return m.Author.Username
	}
	return "unknown"
}

func parseIDs(m *discordgo.MessageCreate) (guildID, userID snowflake.ID, err error) {
	guildID, err = snowflake.Parse(m.GuildID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid guild ID %q: %w", m.GuildID, err)
	}
	userID, err = snowflake.Parse(m.Author.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid user ID %q: %w", m.Author.ID, err)
	}
	return guildID, userID, nil
}

// cleanup deletes the triggering message when enabled. Failures are logged
// only; missing permissions must not break the command.
func (h *CommandHandlers) cleanup(msgr bot.Messenger, m *discordgo.MessageCreate) {
	if !h.deleteTrigger {
		return
	}
	if err := msgr.Delete(m.ChannelID, m.ID); err != nil {
		slog.Warn("failed to delete command message", "channel_id", m.ChannelID, "error", err)
	}
}

func (h *CommandHandlers) reply(msgr bot.Messenger, channelID, content string) {
	if err := msgr.Send(channelID, content); err != nil {
		slog.Error("failed to send reply", "channel_id", channelID, "error", err)
	}
}

func (h *CommandHandlers) replyEmbed(msgr bot.Messenger, channelID string, embed *discordgo.MessageEmbed) {
	if err := msgr.SendEmbed(channelID, embed); err != nil {
		slog.Error("failed to send reply", "channel_id", channelID, "error", err)
	}
}

func (h *CommandHandlers) replyError(msgr bot.Messenger, channelID string, err error) {
	if sendErr := msgr.SendEmbed(channelID, &discordgo.MessageEmbed{
		Description: messageFor(err),
		Color:       colorError,
	}); sendErr != nil {
		slog.Error("failed to send error reply", "channel_id", channelID, "error", sendErr)
	}
}
