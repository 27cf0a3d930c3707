package service

import (
	"github.com/slack-go/slack"

	"net/http"
)

func (c *NotifyCommand) Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error) {
	if len(args) != 1 {
		writeEphemeral(w, Usage(cmd.Command))
		return
	}
	resp := &NotifyResponse{}
	err = s.Notify(&NotifyRequest{Contact: args[0]}, resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeEphemeral(w, resp.Message)
	return
}
