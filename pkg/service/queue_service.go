package service

import (
	"github.com/ml8/counter-queue/pkg/queue"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"fmt"
	"time"
)

// QueueService is the request/response face of a single counter. It owns no
// queue state itself; everything lives in the wrapped queue.Manager.
type QueueService struct {
	m   *queue.Manager
	a   Announcer
	now func() time.Time
}

func TS(m *queue.Manager, a Announcer) *QueueService {
	if a == nil {
		a = LogAnnouncer{}
	}
	return &QueueService{m: m, a: a, now: time.Now}
}

func InMemoryTS(a Announcer) *QueueService {
	return TS(queue.MakeManager(), a)
}

func (s *QueueService) Enroll(req *EnrollRequest, resp *EnrollResponse) (err error) {
	p, err := queue.ParsePriority(string(req.Priority))
	if err != nil {
		glog.Infof("Rejecting enrollment of %v: %v", req.Name, err)
		err = errors.Wrapf(err, "enroll %q", req.Name)
		return
	}
	waiting, pos, seq := s.m.Enroll(req.Name, req.Contact, p)
	resp.Client = waiting[pos]
	resp.Pos = pos
	resp.Waiting = waiting
	resp.Version = seq

	s.announce(fmt.Sprintf("%s enrolled at position %d (priority %d)", req.Name, pos+1, p))
	return
}

// Call never fails: an empty queue is reported by a nil Served.
func (s *QueueService) Call(req *CallRequest, resp *CallResponse) (err error) {
	c, ok, waiting, history, seq := s.m.Call()
	resp.Waiting, resp.History, resp.Version = waiting, history, seq
	if !ok {
		glog.Infof("Queue empty (v %v)", resp.Version)
		return
	}
	resp.Served = &c

	wt := s.now().Sub(c.EnqueuedAt).Round(time.Second)
	s.announce(fmt.Sprintf("Now serving %s (waited %v)", c.Name, wt))
	return
}

func (s *QueueService) List(req *ListRequest, resp *ListResponse) (err error) {
	resp.Waiting, resp.Version = s.m.Waiting()
	return
}

func (s *QueueService) History(req *HistoryRequest, resp *HistoryResponse) (err error) {
	resp.History, resp.Version = s.m.History()
	return
}

func (s *QueueService) Notify(req *NotifyRequest, resp *NotifyResponse) (err error) {
	resp.Message = s.m.CheckNotification(req.Contact)
	return
}

// Called without holding any queue lock; a slow or failing announcer only
// costs a log line.
func (s *QueueService) announce(msg string) {
	if err := s.a.SendAdminMessage(msg); err != nil {
		glog.Errorf("Error announcing %q: %v", msg, err)
	}
}
