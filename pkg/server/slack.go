package server

import (
	"github.com/ml8/counter-queue/pkg/service"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// Checks the Slack request signature, leaving the body readable again.
func (s *Server) verify(r *http.Request) (err error) {
	if s.secret == "" {
		return
	}
	verifier, err := slack.NewSecretsVerifier(r.Header, s.secret)
	if err != nil {
		return errors.Wrap(err, "secrets verifier")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	if _, err = verifier.Write(body); err != nil {
		return errors.Wrap(err, "hash body")
	}
	return verifier.Ensure()
}

func (s *Server) ForwardCommand(w http.ResponseWriter, r *http.Request) {
	if err := s.verify(r); err != nil {
		glog.Infof("Unauthorized slash command: %v", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		glog.Infof("Bad slash command: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	name, args := service.ParseCommand(cmd.Text)
	glog.Infof("Command %v %v parsed for %v (%v)", cmd.Command, name, cmd.UserID, cmd.UserName)
	c, ok := s.commands[name]
	if !ok {
		respond(w, http.StatusOK, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: service.Usage(cmd.Command)})
		return
	}

	if err := c.Handle(&cmd, args, s.service, w); err != nil {
		glog.Errorf("Error handling %v for %v: %v", name, cmd.UserID, err)
	}
}

func (s *Server) ForwardAction(w http.ResponseWriter, r *http.Request) {
	if err := s.verify(r); err != nil {
		glog.Infof("Unauthorized action: %v", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	act := &slack.InteractionCallback{}
	if err := json.Unmarshal([]byte(r.FormValue("payload")), act); err != nil {
		glog.Infof("Bad action payload: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var handler service.Action
	ok := false
	// Only looking for block actions; right now at most one per payload.
	for _, a := range act.ActionCallback.BlockActions {
		handler, ok = s.actions[service.ParseAction(a.ActionID)]
		if ok {
			break
		}
	}

	if !ok {
		glog.Errorf("Unknown action type: %v", act.ActionID)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	handler.Handle(act, s.service, w)
}
