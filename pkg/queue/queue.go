package queue

import (
	"github.com/golang/glog"

	"fmt"
	"sort"
)

// Ordered waiting list. Not thread safe; see Manager.
type List interface {
	// Inserts behind every client with a lower or equal tier; returns the
	// position the client landed at.
	Put(c Client) (pos int)
	TakeFront() (c Client, err error)
	Get(i int) (c Client, err error)
	Find(contact string) (pos int, err error)
	List() (cs []Client)
	Size() int
}

type listImpl struct {
	cs []Client
}

func MakeList() List {
	return &listImpl{}
}

type EmptyError struct{}

func (EmptyError) Error() string {
	return "empty queue"
}

type NotFoundError struct {
	Contact string
}

func (ne NotFoundError) Error() string {
	return fmt.Sprintf("no client with contact %q is waiting", ne.Contact)
}

type IndexError struct {
	Index int
	Size  int
}

func (ie IndexError) Error() string {
	return fmt.Sprintf("no element %d in queue of length %d", ie.Index, ie.Size)
}

// First index whose tier is strictly greater than p, so equal tiers keep
// arrival order.
func (l *listImpl) upperBound(p int64) int {
	return sort.Search(len(l.cs), func(i int) bool {
		return l.cs[i].Priority > p
	})
}

func (l *listImpl) Put(c Client) (pos int) {
	pos = l.upperBound(c.Priority)
	l.cs = append(l.cs, Client{})
	copy(l.cs[pos+1:], l.cs[pos:])
	l.cs[pos] = c
	glog.V(2).Infof("Put %s (tier %d) at %d", c.Name, c.Priority, pos)
	return
}

func (l *listImpl) TakeFront() (c Client, err error) {
	if len(l.cs) == 0 {
		err = EmptyError{}
		return
	}
	c = l.cs[0]
	l.cs[0] = Client{}
	l.cs = l.cs[1:]
	return
}

func (l *listImpl) Get(i int) (c Client, err error) {
	if i < 0 || i >= len(l.cs) {
		err = IndexError{Index: i, Size: len(l.cs)}
		return
	}
	c = l.cs[i]
	return
}

func (l *listImpl) Find(contact string) (pos int, err error) {
	for i, c := range l.cs {
		if c.Contact == contact {
			pos = i
			return
		}
	}
	pos = -1
	err = NotFoundError{Contact: contact}
	return
}

func (l *listImpl) List() (cs []Client) {
	cs = make([]Client, len(l.cs))
	copy(cs, l.cs)
	return
}

func (l *listImpl) Size() int {
	return len(l.cs)
}
