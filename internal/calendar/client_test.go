package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEventsForDateDecodesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth header: got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("date") != "2026-02-15" {
			t.Errorf("date param: got %q", r.URL.Query().Get("date"))
		}
		w.Write([]byte(`{"items":[
			{"id":"e1","summary":"Design sync",
			 "start":{"dateTime":"2026-02-15T10:00:00Z"},
			 "end":{"dateTime":"2026-02-15T10:30:00Z"},
			 "hangoutLink":"https://meet.example/abc",
			 "attendees":[{"email":"a@x.com"},{"email":"b@x.com"}]},
			{"id":"e2","summary":"Offsite","start":{"date":"2026-02-15"},"end":{"date":"2026-02-16"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok")

	events, err := client.EventsForDate(context.Background(), "2026-02-15")
	if err != nil {
		t.Fatalf("EventsForDate failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	timed := events[0]
	if timed.Summary != "Design sync" || timed.AllDay {
		t.Fatalf("timed event wrong: %+v", timed)
	}
	if timed.AttendeeCount != 2 || timed.HangoutLink == "" {
		t.Fatalf("decoration wrong: %+v", timed)
	}
	if timed.Start.Hour() != 10 || timed.End.Minute() != 30 {
		t.Fatalf("times wrong: %v - %v", timed.Start, timed.End)
	}
	if !events[1].AllDay {
		t.Fatalf("all-day event not flagged: %+v", events[1])
	}
}

func TestEventsForDateEmptyTokenIsAuthExpired(t *testing.T) {
	client := NewClient("http://unreachable.invalid")
	_, err := client.EventsForDate(context.Background(), "2026-02-15")
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("got %v, want ErrAuthExpired", err)
	}
}

func TestEventsForDateUnauthorizedInvalidatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("stale")

	_, err := client.EventsForDate(context.Background(), "2026-02-15")
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("got %v, want ErrAuthExpired", err)
	}
	if client.Token() != "" {
		t.Fatalf("rejected token must be dropped, still have %q", client.Token())
	}
}

func TestEventsForDateSkipsMalformedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"id":"bad","summary":"No times","start":{"dateTime":"garbage"},"end":{"dateTime":"garbage"}},
			{"id":"ok","summary":"Fine","start":{"dateTime":"2026-02-15T09:00:00Z"},"end":{"dateTime":"2026-02-15T09:15:00Z"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok")

	events, err := client.EventsForDate(context.Background(), "2026-02-15")
	if err != nil {
		t.Fatalf("EventsForDate failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != "ok" {
		t.Fatalf("malformed item not skipped: %+v", events)
	}
}
