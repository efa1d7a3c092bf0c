// Package notify pushes resolved configurations to a running dev server
// over socket.io, so that it can pick up alias and adapter changes without
// a restart.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// EventResolved is emitted with the resolved configuration document.
const EventResolved = "config:resolved"

// EventFailed is emitted with the error message when resolution fails.
const EventFailed = "config:failed"

// DefaultConnectTimeout bounds the initial connection when the caller's
// context has no deadline.
const DefaultConnectTimeout = 10 * time.Second

// Options configures a Publisher.
type Options struct {
	// Namespace is the socket.io namespace, "/" when empty.
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Publisher holds a connected socket.io client.
type Publisher struct {
	io *socket.Socket
}

// Dial connects to the socket.io endpoint at rawURL using the websocket
// transport and waits for the connection to be established.
func Dial(ctx context.Context, rawURL string, o Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL, "namespace", o.Namespace)

	parsedURL, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to dev server.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection to dev server failed.", "error", err)
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(o.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", o.ConnectTimeout)
	}
}

// Publish emits event with payload. The payload is JSON encoded by the
// socket.io parser.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Publishing event.", "event", event, "sid", p.io.Id())
	p.io.Emit(event, payload)
	return nil
}

// Close disconnects the client.
func (p *Publisher) Close() error {
	p.io.Disconnect()
	return nil
}

func parseURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q: expected http, https, ws or wss", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", rawURL)
	}
	return parsedURL, nil
}
