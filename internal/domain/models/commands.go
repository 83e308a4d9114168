package models

import "strings"

// CommandType enumerates the chat commands understood over WhatsApp.
type CommandType string

const (
	CommandWater   CommandType = "water"
	CommandMeal    CommandType = "meal"
	CommandToday   CommandType = "today"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"water": CommandWater,
	"eau":   CommandWater,
	"w":     CommandWater,
	"meal":  CommandMeal,
	"repas": CommandMeal,
	"m":     CommandMeal,
	"today": CommandToday,
	"bilan": CommandToday,
	"help":  CommandHelp,
	"aide":  CommandHelp,
}

// Command represents a parsed instruction extracted from a chat message.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text. The leading slash is
// optional and matching is case-insensitive.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) == 0 {
		return cmd
	}

	if known, ok := commandAliases[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = known
	}
	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
