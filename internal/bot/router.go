package bot

import (
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// MessageHandler handles a dispatched message command. args is the raw text
// following the command token; further tokenization is up to the handler.
type MessageHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args string, msgr Messenger) error

// MessageCommand describes a prefix command and its dispatch rules.
type MessageCommand struct {
	Name        string
	Aliases     []string
	Description string

	// GuildOnly commands are silently dropped when invoked in a DM.
	GuildOnly bool

	Handler MessageHandler
}

// Router matches raw message text against a prefix list and a
// case-insensitive command/alias table.
type Router struct {
	prefixes []string
	table    map[string]*MessageCommand
	commands []*MessageCommand
}

// NewRouter creates a Router accepting the given prefixes.
func NewRouter(prefixes []string) *Router {
	return &Router{
		prefixes: prefixes,
		table:    make(map[string]*MessageCommand),
	}
}

// Register adds commands to the routing table under their canonical names
// and aliases. Names and aliases are matched case-insensitively.
func (r *Router) Register(cmds ...*MessageCommand) {
	for _, cmd := range cmds {
		r.commands = append(r.commands, cmd)
		r.table[strings.ToLower(cmd.Name)] = cmd
		for _, alias := range cmd.Aliases {
			r.table[strings.ToLower(alias)] = cmd
		}
	}
}

// Commands returns registered commands sorted by canonical name.
func (r *Router) Commands() []*MessageCommand {
	result := make([]*MessageCommand, len(r.commands))
	copy(result, r.commands)
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Match resolves message content to a command and its raw argument text.
// It returns ok=false when the content carries no known prefix or the token
// after the prefix is not a registered command; both cases are silent no-ops
// by design, since other bots may share the same prefixes.
func (r *Router) Match(content string) (cmd *MessageCommand, args string, ok bool) {
	rest, ok := r.stripPrefix(content)
	if !ok {
		return nil, "", false
	}

	name, args := splitCommand(rest)
	if name == "" {
		return nil, "", false
	}

	cmd, ok = r.table[strings.ToLower(name)]
	if !ok {
		return nil, "", false
	}
	return cmd, args, true
}

// stripPrefix removes the first matching prefix, case-insensitively.
func (r *Router) stripPrefix(content string) (string, bool) {
	for _, prefix := range r.prefixes {
		if len(content) < len(prefix) {
			continue
		}
		if strings.EqualFold(content[:len(prefix)], prefix) {
			return content[len(prefix):], true
		}
	}
	return "", false
}

// splitCommand takes the first whitespace-delimited token as the command name
// and returns the remaining text trimmed as raw arguments.
func splitCommand(text string) (name string, args string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	if i := strings.IndexAny(text, " \t\n"); i >= 0 {
		return text[:i], strings.TrimSpace(text[i:])
	}
	return text, ""
}
