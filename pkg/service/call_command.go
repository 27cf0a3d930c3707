package service

import (
	"github.com/golang/glog"
	"github.com/slack-go/slack"

	"fmt"
	"net/http"
)

func callAsBlock(resp *CallResponse) slack.Message {
	var userstr string
	var timestr string
	if resp.Served == nil {
		userstr = "*Queue is empty.*"
		timestr = " "
	} else {
		userstr = fmt.Sprintf("Ok! Up next is *%s* (%s).", resp.Served.Name, resp.Served.Contact)
		timestr = fmt.Sprintf("Time spent in queue: %v", waitTime(resp.Served.EnqueuedAt))
	}

	fields := make([]*slack.TextBlockObject, 2)
	fields[0] = slack.NewTextBlockObject("mrkdwn", userstr, false, false)
	fields[1] = slack.NewTextBlockObject("mrkdwn", timestr, false, false)
	section := slack.NewSectionBlock(nil, fields, nil)
	return slack.NewBlockMessage(section)
}

func (c *CallCommand) Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error) {
	req := &CallRequest{}
	resp := &CallResponse{}

	err = s.Call(req, resp)
	if err != nil {
		glog.Errorf("Error calling next client for %v (%v): %v", cmd.UserID, cmd.UserName, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, callAsBlock(resp))
	return
}
