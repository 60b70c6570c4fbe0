package notify

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/aalvaropc/modreg/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() domain.NoticeID {
	n := 0
	return func() domain.NoticeID {
		n++
		return domain.NoticeID(fmt.Sprintf("n%d", n))
	}
}

func TestSlot_UpdateInPlace(t *testing.T) {
	s := NewSlot(WithIDs(sequentialIDs()))

	id := s.Notify(domain.Notice{Kind: domain.NoticeLoading, Message: domain.MsgRegistering})
	if id != "n1" {
		t.Fatalf("expected allocated id n1, got %q", id)
	}

	got := s.Notify(domain.Notice{ID: id, Kind: domain.NoticeSuccess, Message: domain.MsgRegistered})
	if got != id {
		t.Fatalf("expected same identity, got %q", got)
	}

	cur, ok := s.Current()
	if !ok || cur.ID != id || cur.Kind != domain.NoticeSuccess {
		t.Fatalf("unexpected current notice %+v ok=%v", cur, ok)
	}
}

func TestSlot_NewIdentityReplaces(t *testing.T) {
	s := NewSlot(WithIDs(sequentialIDs()))
	s.Notify(domain.Notice{Kind: domain.NoticeLoading, Message: "a"})
	s.Notify(domain.Notice{Kind: domain.NoticeError, Message: "b"})

	cur, _ := s.Current()
	if cur.ID != "n2" || cur.Message != "b" {
		t.Fatalf("expected second notice to replace first, got %+v", cur)
	}
}

func TestSlot_Expiry(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	s := NewSlot(WithClock(clk.now))

	s.Notify(domain.Notice{Kind: domain.NoticeLoading, Message: "wait"})
	clk.advance(time.Hour)
	if _, ok := s.Current(); !ok {
		t.Fatalf("loading notices must not expire")
	}

	s.Notify(domain.Notice{Kind: domain.NoticeSuccess, Message: "ok"})
	clk.advance(1999 * time.Millisecond)
	if _, ok := s.Current(); !ok {
		t.Fatalf("success notice expired early")
	}
	clk.advance(time.Millisecond)
	if _, ok := s.Current(); ok {
		t.Fatalf("success notice should expire after 2s")
	}

	s.Notify(domain.Notice{Kind: domain.NoticeError, Message: "bad"})
	clk.advance(3 * time.Second)
	if _, ok := s.Current(); !ok {
		t.Fatalf("error notice expired early")
	}
	clk.advance(time.Second)
	if _, ok := s.Current(); ok {
		t.Fatalf("error notice should expire after 4s")
	}
}

func TestSlot_Dismiss(t *testing.T) {
	s := NewSlot()
	id := s.Notify(domain.Notice{Kind: domain.NoticeError, Message: "x"})

	s.Dismiss("someone-else")
	if _, ok := s.Current(); !ok {
		t.Fatalf("dismissing another id must not hide the notice")
	}
	s.Dismiss(id)
	if _, ok := s.Current(); ok {
		t.Fatalf("expected notice dismissed")
	}
}

func TestSlot_DefaultIDsAreUnique(t *testing.T) {
	s := NewSlot()
	a := s.Notify(domain.Notice{Kind: domain.NoticeError, Message: "a"})
	b := s.Notify(domain.Notice{Kind: domain.NoticeError, Message: "b"})
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestPrinterObserver(t *testing.T) {
	var buf bytes.Buffer
	s := NewSlot(WithObserver(Printer(&buf)))

	id := s.Notify(domain.Notice{Kind: domain.NoticeLoading, Message: domain.MsgRegistering})
	s.Notify(domain.Notice{ID: id, Kind: domain.NoticeError, Message: "username taken"})

	want := "… Registering moderator...\n✗ username taken\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
