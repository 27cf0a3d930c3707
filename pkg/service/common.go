package service

import (
	"github.com/golang/glog"
	"github.com/slack-go/slack"

	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		glog.Errorf("Error marshalling json: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func writeEphemeral(w http.ResponseWriter, text string) {
	writeJSON(w, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: text})
}

func Usage(command string) string {
	if command == "" {
		command = "/counter"
	}
	return strings.Join([]string{
		fmt.Sprintf("Usage: %s <subcommand>", command),
		"  enroll <name> <contact> <priority>",
		"  call",
		"  list",
		"  history",
		"  notify <contact>",
	}, "\n")
}

func waitTime(since time.Time) time.Duration {
	return time.Now().Sub(since).Round(time.Second)
}

func clientsAsBlocks(title string, cs []clientLine) (blocks []slack.Block) {
	header := slack.NewTextBlockObject("mrkdwn", title, false, false)
	blocks = append(blocks, slack.NewSectionBlock(header, nil, nil))
	for _, c := range cs {
		blocks = append(blocks, slack.NewDividerBlock())
		text := slack.NewTextBlockObject("mrkdwn", c.String(), false, false)
		blocks = append(blocks, slack.NewSectionBlock(text, nil, nil))
	}
	return
}

type clientLine struct {
	pos      int
	name     string
	contact  string
	priority int64
	wait     time.Duration // only shown for clients still waiting
	waiting  bool
}

func (c clientLine) String() string {
	if !c.waiting {
		return fmt.Sprintf("%d: *%s* (%s)\npriority: %d", c.pos+1, c.name, c.contact, c.priority)
	}
	return fmt.Sprintf("%d: *%s* (%s)\npriority: %d, wait time: %v", c.pos+1, c.name, c.contact, c.priority, c.wait)
}
