package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/arvoh/manabot/internal/bot"
	"github.com/arvoh/manabot/internal/modules/cardlookup/application/usecases"
	"github.com/arvoh/manabot/internal/modules/cardlookup/domain"
)

const (
	colorCard  = 0x8A4FBE
	colorError = 0xE74C3C
)

// blackWhiteLands is the static list of white/black dual lands.
var blackWhiteLands = []string{
	"Neglected Manor",
	"Forlorn Flats",
	"Shadowy Backstreet",
	"Scoured Barrens",
	"Sunlit Marsh",
	"Concealed Courtyard",
	"Caves of Koilos",
	"Restless Fortress",
	"Godless Shrine",
	"Marsh Flats",
	"Temple of Silence",
	"Orzhov Guildgate",
	"Shattered Sanctum",
	"Silverquill Campus",
	"Shineshadow Snarl",
	"Snowfield Sinkhole",
	"Isolated Chapel",
	"Forsaken Sanctuary",
	"Shambling Vent",
	"Brightclimb Pathway",
	"Goldmire Bridge",
	"Silent Clearing",
	"Fetid Heath",
	"Orzhov Basilica",
}

// CommandHandlers holds the card lookup command handlers.
type CommandHandlers struct {
	lookup        *usecases.LookupService
	deleteTrigger bool
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(lookup *usecases.LookupService, deleteTrigger bool) *CommandHandlers {
	return &CommandHandlers{
		lookup:        lookup,
		deleteTrigger: deleteTrigger,
	}
}

// Commands returns the message commands this module provides.
func (h *CommandHandlers) Commands() []*bot.MessageCommand {
	return []*bot.MessageCommand{
		{Name: "card", Aliases: []string{"scry", "s"}, Description: "Look up a card by name.", GuildOnly: true, Handler: h.HandleCard},
		{Name: "doublecard", Aliases: []string{"sdf"}, Description: "Look up a double-faced card by name.", GuildOnly: true, Handler: h.HandleDoubleCard},
		{Name: "randomsearch", Aliases: []string{"sr"}, Description: "Fetch a random card.", GuildOnly: true, Handler: h.HandleRandomSearch},
		{Name: "blackwhitelands", Aliases: []string{"lbw", "wbl"}, Description: "List white/black dual lands.", GuildOnly: true, Handler: h.HandleBlackWhiteLands},
	}
}

// HandleCard handles the card command: fuzzy lookup followed by price, image,
// and summary replies.
func (h *CommandHandlers) HandleCard(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	output, err := h.lookup.NamedFuzzy(context.Background(), args)
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.reply(msgr, m.ChannelID, priceLine(output.Card, "Card Price (USD)"))
	h.sendImages(msgr, m.ChannelID, output.Card)
	h.reply(msgr, m.ChannelID, summaryLine(output, true))
	return nil
}

// HandleDoubleCard handles the doublecard command, rendering both faces of a
// multi-faced card.
func (h *CommandHandlers) HandleDoubleCard(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	output, err := h.lookup.NamedFuzzy(context.Background(), args)
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}
	card := output.Card

	if card.HasFaces() && card.HasPrice() {
		h.reply(msgr, m.ChannelID, priceLine(card, "Card Price (USD)"))
		for _, face := range card.Faces {
			if face.ImageURL != "" {
				h.replyEmbed(msgr, m.ChannelID, faceEmbed(face))
			}
		}
	} else {
		h.reply(msgr, m.ChannelID, priceLine(card, "Card Price (USD)"))
		h.reply(msgr, m.ChannelID, fmt.Sprintf(
			"Unable to find face images (possibly a single-faced card). Here is the Scryfall link:\n%s",
			card.ScryfallURL,
		))
	}

	h.reply(msgr, m.ChannelID, summaryLine(output, false))
	return nil
}

// HandleRandomSearch handles the randomsearch command against a random card.
func (h *CommandHandlers) HandleRandomSearch(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	output, err := h.lookup.Random(context.Background())
	if err != nil {
		h.replyError(msgr, m.ChannelID, err)
		return nil
	}

	h.reply(msgr, m.ChannelID, priceLine(output.Card, "Random card found! Price (USD)"))
	h.sendImages(msgr, m.ChannelID, output.Card)
	h.reply(msgr, m.ChannelID, summaryLine(output, true))
	return nil
}

// HandleBlackWhiteLands handles the blackwhitelands command.
func (h *CommandHandlers) HandleBlackWhiteLands(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr bot.Messenger) error {
	h.cleanup(msgr, m)

	h.reply(msgr, m.ChannelID, strings.Join(blackWhiteLands, ", "))
	return nil
}

// sendImages renders the card image branch: a combined image when present,
// otherwise each face image, otherwise the Scryfall link.
func (h *CommandHandlers) sendImages(msgr bot.Messenger, channelID string, card *domain.Card) {
	switch {
	case card.HasImage():
		h.replyEmbed(msgr, channelID, &discordgo.MessageEmbed{
			Title: card.Name,
			Color: colorCard,
			Image: &discordgo.MessageEmbedImage{URL: card.ImageURL},
		})

	case card.HasFaces():
		h.reply(msgr, channelID, fmt.Sprintf(
			"No combined image for this card (double-faced). Here is the Scryfall link:\n%s",
			card.ScryfallURL,
		))
		for _, face := range card.Faces {
			if face.ImageURL != "" {
				h.replyEmbed(msgr, channelID, faceEmbed(face))
			}
		}

	default:
		h.reply(msgr, channelID, fmt.Sprintf(
			"Unable to find a card image. Here is the Scryfall link:\n%s",
			card.ScryfallURL,
		))
	}
}

func faceEmbed(face domain.CardFace) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: face.Name,
		Color: colorCard,
		Image: &discordgo.MessageEmbedImage{URL: face.ImageURL},
	}
}

func priceLine(card *domain.Card, label string) string {
	if card.HasPrice() {
		return fmt.Sprintf("%s: $%s", label, card.PriceUSD)
	}
	return "Unable to find Card Price (USD)"
}

// summaryLine composes the fetch-time and legality summary. The printing line
// is included only for single-card lookups.
func summaryLine(output *usecases.LookupOutput, withPrinting bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fetch time in ms: %d\n", output.Elapsed.Milliseconds())
	fmt.Fprintf(&b, "Modern: %s\n", output.Card.Legalities.Modern.Display())
	fmt.Fprintf(&b, "Pauper: %s\n", output.Card.Legalities.Pauper.Display())
	fmt.Fprintf(&b, "Commander: %s", output.Card.Legalities.Commander.Display())
	if withPrinting {
		fmt.Fprintf(&b, "\nPrinting: %s", output.Card.SetName)
	}
	return b.String()
}

// cleanup deletes the triggering message when enabled. Failures are logged
// only.
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
