package queue

import (
	"github.com/golang/glog"

	"sync"
	"time"
)

// Manager owns the waiting list and the served history of one counter.
//
// Every operation holds a single lock for its whole duration, so callers never
// observe a client that has left the waiting list but is not yet in the
// history. Each mutation bumps a version number which reads report back, so a
// caller can tell whether two snapshots describe the same state.
//
// One Manager is meant to be created per process by the entry point and
// handed to the transport; nothing here is global.
//
// Thread safe.
type Manager struct {
	mu      sync.Mutex
	waiting List
	history []Client
	seq     int64 // version number
	now     func() time.Time
}

func MakeManager() *Manager {
	return &Manager{waiting: MakeList(), now: time.Now}
}

// Adds a client in tier order and returns the resulting waiting list.
func (m *Manager) Enroll(name, contact string, priority int64) (waiting []Client, pos int, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := Client{Name: name, Contact: contact, Priority: priority, EnqueuedAt: m.now()}
	pos = m.waiting.Put(c)
	m.seq += 1
	seq = m.seq
	waiting = m.waiting.List()
	glog.Infof("Enrolled %v (tier %d) at position %d (v %v)", name, priority, pos, seq)
	return
}

// Moves the front of the waiting list to the end of the history. ok is false,
// and nothing changes, when nobody is waiting.
func (m *Manager) CallNext() (c Client, ok bool, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callNext()
}

// CallNext plus the waiting list and history it left behind, all from the
// same critical section.
func (m *Manager) Call() (c Client, ok bool, waiting []Client, history []Client, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok, seq = m.callNext()
	waiting, history = m.snapshot()
	return
}

func (m *Manager) callNext() (c Client, ok bool, seq int64) {
	c, err := m.waiting.TakeFront()
	if err != nil {
		seq = m.seq
		glog.V(1).Infof("Call on empty queue (v %v)", seq)
		return
	}
	m.history = append(m.history, c)
	m.seq += 1
	seq = m.seq
	ok = true
	glog.Infof("Called %v (tier %d), %d still waiting (v %v)", c.Name, c.Priority, m.waiting.Size(), seq)
	return
}

func (m *Manager) Waiting() (waiting []Client, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	waiting = m.waiting.List()
	seq = m.seq
	return
}

func (m *Manager) History() (history []Client, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history = make([]Client, len(m.history))
	copy(history, m.history)
	seq = m.seq
	return
}

// Position of the first waiting client with the given contact.
func (m *Manager) Find(contact string) (pos int, seq int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos, err = m.waiting.Find(contact)
	seq = m.seq
	return
}

func (m *Manager) Size() (size int, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	size = m.waiting.Size()
	seq = m.seq
	return
}

// Answers whether the client with this contact is about to be served. See
// notificationFor.
func (m *Manager) CheckNotification(contact string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return notificationFor(m.waiting, contact)
}

// Waiting list and history as of the same version.
func (m *Manager) Snapshot() (waiting []Client, history []Client, seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	waiting, history = m.snapshot()
	seq = m.seq
	return
}

func (m *Manager) snapshot() (waiting []Client, history []Client) {
	waiting = m.waiting.List()
	history = make([]Client, len(m.history))
	copy(history, m.history)
	return
}
