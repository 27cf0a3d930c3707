package service

import (
	"github.com/golang/glog"
	"github.com/slack-go/slack"

	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func enrollAsBlock(resp *EnrollResponse) slack.Message {
	statusstr := fmt.Sprintf("*Status:*\nOk! %s is %d in the queue.", resp.Client.Name, resp.Pos+1)
	timestr := fmt.Sprintf("*Enrolled At:*\n%v", resp.Client.EnqueuedAt.Local().Format("15:04:05"))

	fields := make([]*slack.TextBlockObject, 2)
	fields[0] = slack.NewTextBlockObject("mrkdwn", statusstr, false, false)
	fields[1] = slack.NewTextBlockObject("mrkdwn", timestr, false, false)
	section := slack.NewSectionBlock(nil, fields, nil)
	return slack.NewBlockMessage(section)
}

// enroll <name...> <contact> <priority>; the name may contain spaces.
func (c *EnrollCommand) Handle(cmd *slack.SlashCommand, args []string, s *QueueService, w http.ResponseWriter) (err error) {
	if len(args) < 3 {
		writeEphemeral(w, Usage(cmd.Command))
		return
	}
	n := len(args)
	req := &EnrollRequest{
		Name:    strings.Join(args[:n-2], " "),
		Contact: args[n-2],
	}
	req.Priority, _ = json.Marshal(args[n-1])
	resp := &EnrollResponse{}

	err = s.Enroll(req, resp)
	if err != nil {
		glog.Infof("Slash enroll from %v (%v) rejected: %v", cmd.UserID, cmd.UserName, err)
		writeEphemeral(w, fmt.Sprintf("Could not enroll %s: priority %q is not an integer.", req.Name, args[n-1]))
		err = nil
		return
	}

	writeJSON(w, enrollAsBlock(resp))
	return
}
