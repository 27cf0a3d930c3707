package service

import (
	"github.com/slack-go/slack"

	"fmt"
	"net/http"
)

// Action id of the "Call next" button attached to the waiting list.
const CallActionName = "call"

func listAsBlock(resp *ListResponse) slack.Message {
	lines := make([]clientLine, len(resp.Waiting))
	for i, c := range resp.Waiting {
		lines[i] = clientLine{pos: i, name: c.Name, contact: c.Contact, priority: c.Priority, wait: waitTime(c.EnqueuedAt), waiting: true}
	}
	title := fmt.Sprintf("*Waiting:* %d", len(resp.Waiting))
	if len(resp.Waiting) == 0 {
		title = "*Queue is empty.*"
	}
	blocks := clientsAsBlocks(title, lines)

	button := slack.NewButtonBlockElement(CallActionName, fmt.Sprintf("%d", resp.Version),
		slack.NewTextBlockObject("plain_text", "Call next", false, false))
	blocks = append(blocks, slack.NewActionBlock("counter", button))
	return slack.NewBlockMessage(blocks...)
}

func historyAsBlock(resp *HistoryResponse) slack.Message {
	lines := make([]clientLine, len(resp.History))
	for i, c := range resp.History {
		lines[i] = clientLine{pos: i, name: c.Name, contact: c.Contact, priority: c.Priority}
	}
	title := fmt.Sprintf("*Served:* %d", len(resp.History))
	return slack.NewBlockMessage(clientsAsBlocks(title, lines)...)
}

func (c *ListCommand) Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error) {
	resp := &ListResponse{}
	err = s.List(&ListRequest{}, resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, listAsBlock(resp))
	return
}

func (c *HistoryCommand) Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error) {
	resp := &HistoryResponse{}
	err = s.History(&HistoryRequest{}, resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, historyAsBlock(resp))
	return
}
