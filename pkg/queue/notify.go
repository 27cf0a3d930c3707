package queue

import "fmt"

// The only queue slot that triggers a personal notice: second in line.
const NoticePosition = 1

const (
	noticeFormat  = "Hello %s, your turn is coming up! 2 people remain before your service."
	GenericNotice = "There are still people ahead of you."
)

func NoticeFor(name string) string {
	return fmt.Sprintf(noticeFormat, name)
}

// A client whose contact sits exactly at NoticePosition gets a personal notice.
// Anyone else, including unknown contacts and the client at the front, gets
// GenericNotice; the two cases are deliberately indistinguishable.
func notificationFor(l List, contact string) string {
	c, err := l.Get(NoticePosition)
	if err != nil || c.Contact != contact {
		return GenericNotice
	}
	return NoticeFor(c.Name)
}
