package queue

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

var m *Manager

func names(cs []Client) (lst []string) {
	lst = make([]string, len(cs))
	for i, c := range cs {
		lst[i] = c.Name
	}
	return
}

func validateNames(t *testing.T, cs []Client, expected []string) {
	t.Helper()
	got := names(cs)
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, got)
		}
	}
}

func validateSorted(t *testing.T, cs []Client) {
	t.Helper()
	for i := 1; i < len(cs); i++ {
		if cs[i-1].Priority > cs[i].Priority {
			t.Fatalf("Out of order at %d: %d > %d", i, cs[i-1].Priority, cs[i].Priority)
		}
	}
}

func TestEnrollOrder(t *testing.T) {
	m = MakeManager()
	m.Enroll("c", "3", 3)
	m.Enroll("a", "1", 1)
	m.Enroll("d", "4", 4)
	waiting, pos, _ := m.Enroll("b", "2", 2)

	if pos != 1 {
		t.Fatalf("Expected b at position 1, got %d", pos)
	}
	validateNames(t, waiting, []string{"a", "b", "c", "d"})
}

func TestEnrollStable(t *testing.T) {
	m = MakeManager()
	tiers := []int64{2, 1, 2, 0, 1, 2, -5, 1}
	for i, p := range tiers {
		m.Enroll(strconv.Itoa(i), strconv.Itoa(i), p)
	}
	waiting, _ := m.Waiting()
	validateSorted(t, waiting)
	// Equal tiers keep enrollment order.
	validateNames(t, waiting, []string{"6", "3", "1", "4", "7", "0", "2", "5"})
}

func TestEnrollNegativeAndExtremeTiers(t *testing.T) {
	m = MakeManager()
	m.Enroll("max", "1", 9223372036854775807)
	m.Enroll("min", "2", -9223372036854775808)
	m.Enroll("zero", "3", 0)
	waiting, _ := m.Waiting()
	validateNames(t, waiting, []string{"min", "zero", "max"})
}

func testCallFront(t *testing.T) {
	before, _ := m.Waiting()
	hbefore, _ := m.History()
	c, ok, _ := m.CallNext()
	if !ok {
		t.Fatalf("Expected a client")
	}
	if c != before[0] {
		t.Fatalf("Expected %+v, got %+v", before[0], c)
	}
	after, _ := m.Waiting()
	validateNames(t, after, names(before[1:]))
	history, _ := m.History()
	if len(history) != len(hbefore)+1 || history[len(history)-1] != c {
		t.Fatalf("Expected %v appended to history %v", c.Name, names(history))
	}
}

func testCallEmpty(t *testing.T) {
	for {
		if _, ok, _ := m.CallNext(); !ok {
			break
		}
	}
	history, hseq := m.History()
	c, ok, seq := m.CallNext()
	if ok {
		t.Fatalf("Expected nothing from empty queue, got %+v", c)
	}
	if seq != hseq {
		t.Fatalf("Empty call changed version %d -> %d", hseq, seq)
	}
	after, _ := m.History()
	validateNames(t, after, names(history))
	if size, _ := m.Size(); size != 0 {
		t.Fatalf("Expected empty queue, got size %d", size)
	}
}

func TestCallNext(t *testing.T) {
	m = MakeManager()
	m.Enroll("x", "1", 5)
	m.Enroll("y", "2", 1)
	m.Enroll("z", "3", 5)

	t.Run("CallFront", testCallFront)
	t.Run("CallFrontAgain", testCallFront)
	t.Run("CallEmpty", testCallEmpty)

	history, _ := m.History()
	validateNames(t, history, []string{"y", "x", "z"})
}

func TestReadsDoNotMutate(t *testing.T) {
	m = MakeManager()
	m.Enroll("a", "1", 1)
	m.Enroll("b", "2", 1)
	m.CallNext()

	w1, s1 := m.Waiting()
	w2, s2 := m.Waiting()
	h1, s3 := m.History()
	h2, s4 := m.History()
	m.CheckNotification("2")
	m.Find("2")
	_, s5 := m.Size()

	if s1 != s2 || s2 != s3 || s3 != s4 || s4 != s5 {
		t.Fatalf("Reads changed the version: %d %d %d %d %d", s1, s2, s3, s4, s5)
	}
	validateNames(t, w2, names(w1))
	validateNames(t, h2, names(h1))
}

func TestSnapshotsAreCopies(t *testing.T) {
	m = MakeManager()
	m.Enroll("a", "1", 1)
	waiting, _ := m.Waiting()
	waiting[0].Name = "mutated"
	m.CallNext()
	history, _ := m.History()
	history[0].Name = "mutated"

	h, _ := m.History()
	validateNames(t, h, []string{"a"})
}

func TestVersionIncreases(t *testing.T) {
	m = MakeManager()
	_, oseq := m.Waiting()
	_, _, seq := m.Enroll("a", "1", 1)
	if seq <= oseq {
		t.Fatal("Failed to increase version on enroll.")
	}
	_, _, nseq := m.CallNext()
	if nseq <= seq {
		t.Fatal("Failed to increase version on call.")
	}
}

func TestFind(t *testing.T) {
	m = MakeManager()
	m.Enroll("a", "111", 1)
	m.Enroll("b", "222", 2)

	pos, _, err := m.Find("222")
	if err != nil || pos != 1 {
		t.Fatalf("Expected 222 at 1, got %d (%v)", pos, err)
	}
	_, _, err = m.Find("999")
	if _, ok := err.(NotFoundError); !ok {
		t.Fatalf("Expected NotFoundError, got %#v", err)
	}
}

func TestEnqueuedAt(t *testing.T) {
	m = MakeManager()
	stamp := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return stamp }
	m.Enroll("a", "1", 1)
	c, _, _ := m.CallNext()
	if !c.EnqueuedAt.Equal(stamp) {
		t.Fatalf("Expected enqueue time %v, got %v", stamp, c.EnqueuedAt)
	}
}

func TestConcurrentCalls(t *testing.T) {
	m = MakeManager()
	n := 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Enroll(strconv.Itoa(i), strconv.Itoa(i), int64(i%7))
		}(i)
	}
	wg.Wait()

	waiting, _ := m.Waiting()
	validateSorted(t, waiting)

	served := make(chan Client, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c, ok, _ := m.CallNext(); ok {
				served <- c
			}
		}()
	}
	wg.Wait()
	close(served)

	seen := make(map[string]bool)
	for c := range served {
		if seen[c.Name] {
			t.Fatalf("%v served twice", c.Name)
		}
		seen[c.Name] = true
	}
	history, _ := m.History()
	if len(seen) != n || len(history) != n {
		t.Fatalf("Expected %d served, got %d (history %d)", n, len(seen), len(history))
	}
	validateSorted(t, history)
}

func TestScenario(t *testing.T) {
	m = MakeManager()
	m.Enroll("Ana", "111", 2)
	m.Enroll("Bruno", "222", 1)
	waiting, _, _ := m.Enroll("Carla", "333", 1)
	validateNames(t, waiting, []string{"Bruno", "Carla", "Ana"})

	c, ok, _ := m.CallNext()
	if !ok || c.Name != "Bruno" {
		t.Fatalf("Expected Bruno, got %+v", c)
	}
	waiting, _ = m.Waiting()
	validateNames(t, waiting, []string{"Carla", "Ana"})
	history, _ := m.History()
	validateNames(t, history, []string{"Bruno"})

	if msg := m.CheckNotification("111"); msg != NoticeFor("Ana") {
		t.Fatalf("Expected notice for Ana, got %q", msg)
	}
}

func TestCallSnapshot(t *testing.T) {
	m = MakeManager()
	m.Enroll("a", "1", 2)
	m.Enroll("b", "2", 1)

	c, ok, waiting, history, seq := m.Call()
	if !ok || c.Name != "b" {
		t.Fatalf("Expected b, got %+v", c)
	}
	validateNames(t, waiting, []string{"a"})
	validateNames(t, history, []string{"b"})
	if _, _, cur := m.Snapshot(); seq != cur {
		t.Fatalf("Expected version %d, current %d", seq, cur)
	}

	m.Call()
	_, ok, waiting, history, nseq := m.Call()
	if ok || len(waiting) != 0 || len(history) != 2 || nseq != seq+1 {
		t.Fatalf("Unexpected empty call result: ok=%v waiting=%v history=%v v=%d", ok, names(waiting), names(history), nseq)
	}
}

// Every enroll adds one waiting client and every call moves one to history,
// each bumping the version, so a consistent view satisfies
// version == len(waiting) + 2*len(history).
func TestCallSnapshotConsistent(t *testing.T) {
	m = MakeManager()
	n := 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			m.Enroll(strconv.Itoa(i), strconv.Itoa(i), int64(i%3))
		}(i)
		go func() {
			defer wg.Done()
			c, ok, waiting, history, seq := m.Call()
			if seq != int64(len(waiting)+2*len(history)) {
				t.Errorf("Inconsistent view: v=%d waiting=%d history=%d", seq, len(waiting), len(history))
			}
			if ok && history[len(history)-1] != c {
				t.Errorf("Served %v is not the last of history", c.Name)
			}
		}()
	}
	wg.Wait()
}
