package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const embedColorInfo = 0x5865F2

// builtinCommands returns the help and aliases commands, rendered from the
// routing table so they always reflect every registered module.
func (b *Bot) builtinCommands() []*MessageCommand {
	return []*MessageCommand{
		{
			Name:        "help",
			Aliases:     []string{"h", "commands"},
			Description: "List all commands.",
			Handler:     b.handleHelp,
		},
		{
			Name:        "aliases",
			Description: "List command aliases.",
			Handler:     b.handleAliases,
		},
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr Messenger) error {
	var sb strings.Builder
	for _, cmd := range b.router.Commands() {
		fmt.Fprintf(&sb, "**%s**: %s\n", cmd.Name, cmd.Description)
	}

	return msgr.SendEmbed(m.ChannelID, &discordgo.MessageEmbed{
		Title:       "Commands",
		Description: sb.String(),
		Color:       embedColorInfo,
	})
}

func (b *Bot) handleAliases(s *discordgo.Session, m *discordgo.MessageCreate, _ string, msgr Messenger) error {
	var sb strings.Builder
	for _, cmd := range b.router.Commands() {
		if len(cmd.Aliases) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "**%s**: %s\n", cmd.Name, strings.Join(cmd.Aliases, ", "))
	}
	if sb.Len() == 0 {
		sb.WriteString("No aliases registered.")
	}

	return msgr.SendEmbed(m.ChannelID, &discordgo.MessageEmbed{
		Title:       "Aliases",
		Description: sb.String(),
		Color:       embedColorInfo,
	})
}
