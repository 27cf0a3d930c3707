package service

import (
	"github.com/slack-go/slack"

	"net/http"
	"strings"
)

const (
	enrollCommandName  = "enroll"
	callCommandName    = "call"
	listCommandName    = "list"
	historyCommandName = "history"
	notifyCommandName  = "notify"
)

// Subcommands of the counter slash command, keyed by their first word.
func DefaultCommands() (commands map[string]Command) {
	commands = make(map[string]Command)
	commands[enrollCommandName] = &EnrollCommand{}
	commands[callCommandName] = &CallCommand{}
	commands[listCommandName] = &ListCommand{}
	commands[historyCommandName] = &HistoryCommand{}
	commands[notifyCommandName] = &NotifyCommand{}
	return
}

type Command interface {
	Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error)
}

// Splits "enroll Ana 111 2" into ("enroll", ["Ana", "111", "2"]).
func ParseCommand(text string) (name string, args []string) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return
	}
	name = strings.ToLower(parts[0])
	args = parts[1:]
	return
}

type EnrollCommand struct{}

type CallCommand struct{}

type ListCommand struct{}

type HistoryCommand struct{}

type NotifyCommand struct{}
