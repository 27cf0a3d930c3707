package service

import (
	"github.com/golang/glog"
	"github.com/slack-go/slack"

	"net/http"
)

func DefaultActions() (actions map[string]Action) {
	actions = make(map[string]Action)
	actions[CallActionName] = &CallAction{}
	return
}

func ParseAction(actionID string) string {
	return actionID
}

type Action interface {
	Handle(action *slack.InteractionCallback, s *QueueService, w http.ResponseWriter)
}

type CallAction struct{}

// The "Call next" button. It always calls the current front of the queue,
// whatever version the list it was rendered from had.
func (a *CallAction) Handle(action *slack.InteractionCallback, s *QueueService, w http.ResponseWriter) {
	resp := &CallResponse{}
	if err := s.Call(&CallRequest{}, resp); err != nil {
		glog.Errorf("Error calling next client for %v (%v): %v", action.User.ID, action.User.Name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if resp.Served != nil {
		glog.Infof("%v called %v from the list", action.User.Name, resp.Served.Name)
	}

	msg := callAsBlock(resp)
	msg.ReplaceOriginal = true
	writeJSON(w, msg)
}
