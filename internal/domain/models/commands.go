package models

import "strings"

// CommandType enumerates supported farmer command categories.
type CommandType string

const (
	CommandMortality CommandType = "mortality"
	CommandFeed      CommandType = "feed"
	CommandWeight    CommandType = "weight"
	CommandSale      CommandType = "sale"
	CommandExpense   CommandType = "expense"
	CommandRates     CommandType = "rates"
	CommandReport    CommandType = "report"
	CommandUnknown   CommandType = "unknown"
)

// Command represents a parsed farmer instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
// Only the command word is case-folded; argument tokens keep the farmer's
// casing because they end up in descriptions and confirmations.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Raw: message}

	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.TrimPrefix(strings.ToLower(tokens[0]), "/")
	switch head {
	case string(CommandMortality):
		cmd.Type = CommandMortality
	case string(CommandFeed):
		cmd.Type = CommandFeed
	case string(CommandWeight):
		cmd.Type = CommandWeight
	case string(CommandSale), "sales":
		cmd.Type = CommandSale
	case string(CommandExpense), "expenses":
		cmd.Type = CommandExpense
	case string(CommandRates), "rate":
		cmd.Type = CommandRates
	case string(CommandReport):
		cmd.Type = CommandReport
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
