// Package notifytest runs an in-process socket.io server that records the
// events published to it.
package notifytest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zishang520/socket.io/v2/socket"
)

// Event is one event received by the server.
type Event struct {
	Name string
	Args []any
}

// Server is a socket.io server listening on a local httptest server.
type Server struct {
	URL    string
	events chan Event
}

// NewServer starts a server and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{events: make(chan Event, 64)}

	io := socket.NewServer(nil, nil)
	// Listeners are attached in a middleware so they exist before the
	// client sees the connect packet.
	io.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		client.OnAny(func(args ...any) {
			if len(args) == 0 {
				return
			}
			name, _ := args[0].(string)
			select {
			case s.events <- Event{Name: name, Args: args[1:]}:
			default:
				t.Errorf("notifytest: event buffer full, dropping %q", name)
			}
		})
		next(nil)
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.ServeHandler(nil))
	ts := httptest.NewServer(mux)
	s.URL = ts.URL

	t.Cleanup(func() {
		io.Close(nil)
		ts.Close()
	})
	return s
}

// Next waits for the next event, failing the test after timeout.
func (s *Server) Next(t testing.TB, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-s.events:
		return ev
	case <-time.After(timeout):
		t.Fatalf("notifytest: no event received within %s", timeout)
		return Event{}
	}
}

// WaitFor skips events until one named name arrives.
func (s *Server) WaitFor(t testing.TB, name string, timeout time.Duration) Event {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("notifytest: event %q not received within %s", name, timeout)
		}
		if ev := s.Next(t, remaining); ev.Name == name {
			return ev
		}
	}
}
