package service

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"sync"
	"time"
)

// Announcer feeds the counter's operator display: one line per enrollment
// and per call. It is not a channel to the clients themselves.
type Announcer interface {
	SendAdminMessage(str string) (err error)
}

// LogAnnouncer only logs; used when no Slack workspace is configured.
type LogAnnouncer struct{}

func (LogAnnouncer) SendAdminMessage(str string) (err error) {
	glog.Infof("[counter] %s", str)
	return
}

const maxChannelCacheAge = time.Hour
const maxRetries = 10

// SlackAnnouncer posts announcements to a Slack channel looked up by name.
// The channel id is cached and refreshed at most every maxChannelCacheAge.
// After maxRetries failed lookups it stops asking Slack until
// maxChannelCacheAge has passed since the last attempt.
type SlackAnnouncer struct {
	mu        sync.Mutex
	adminChan string
	api       *slack.Client
	chanId    string
	stale     bool
	// Time of the last lookup attempt, successful or not.
	lastRefreshTime time.Time
	retries         int
}

func MakeSlackAnnouncer(api *slack.Client, adminChan string) *SlackAnnouncer {
	return &SlackAnnouncer{api: api, adminChan: adminChan, stale: true}
}

func getChannels(api *slack.Client) (chans []slack.Channel, err error) {
	types := []string{"public_channel", "private_channel"}
	params := slack.GetConversationsParameters{Types: types}
	for {
		c, nc, e := api.GetConversations(&params)
		if e != nil {
			err = errors.Wrap(e, "conversations.list")
			return
		}
		glog.V(2).Infof("Got %d channels", len(c))
		chans = append(chans, c...)
		if nc == "" {
			// Done when cursor is empty
			break
		}
		params.Cursor = nc
	}
	return
}

func (p *SlackAnnouncer) maybeRefresh() (err error) {
	age := time.Now().Sub(p.lastRefreshTime)
	if p.retries > maxRetries {
		if age <= maxChannelCacheAge {
			err = errors.Errorf("giving up on channel %v after %d attempts", p.adminChan, p.retries)
			return
		}
		glog.Infof("Retrying lookup of channel %v after %v", p.adminChan, age)
		p.retries = 0
	}
	if !p.stale && age <= maxChannelCacheAge {
		glog.V(1).Infof("Not refreshing... refreshed %v ago", age)
		return
	}

	p.lastRefreshTime = time.Now()
	channels, err := getChannels(p.api)
	if err != nil {
		p.retries++
		return
	}
	for _, channel := range channels {
		glog.V(2).Infof("Channel: %v", channel.Name)
		if channel.Name == p.adminChan {
			p.chanId = channel.ID
			p.stale = false
			p.retries = 0
			return
		}
	}
	p.retries++
	err = errors.Errorf("could not find channel %v", p.adminChan)
	return
}

func (p *SlackAnnouncer) SendAdminMessage(msg string) (err error) {
	p.mu.Lock()
	err = p.maybeRefresh()
	chanId := p.chanId
	p.mu.Unlock()
	if err != nil {
		return
	}
	_, _, err = p.api.PostMessage(chanId,
		slack.MsgOptionText(msg, false),
		slack.MsgOptionAsUser(true))
	return errors.Wrap(err, "chat.postMessage")
}
