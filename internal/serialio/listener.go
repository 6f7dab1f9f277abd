package serialio

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultErrorPause   = time.Second

	// stopWait bounds how long Stop blocks for the reader goroutine.
	stopWait = 2 * time.Second
)

// FrameHandler receives one decoded frame per successfully parsed JSON
// object, in extraction order.
type FrameHandler func(fields map[string]any)

// ListenerConfig tunes one listener. Zero intervals take the defaults.
type ListenerConfig struct {
	Port         string
	Baudrate     int
	PollInterval time.Duration
	ErrorPause   time.Duration
}

// Listener owns one serial connection and a single reader goroutine that
// extracts brace-delimited JSON frames from the byte stream and hands
// them to the frame handler. It knows nothing about frame content.
type Listener struct {
	transport Transport
	cfg       ListenerConfig
	onFrame   FrameHandler
	logger    *slog.Logger
	session   string

	mu      sync.Mutex
	conn    Conn
	stop    chan struct{}
	done    chan struct{}
	started bool
	stopped bool
}

// NewListener builds a listener; Start opens the port.
func NewListener(t Transport, cfg ListenerConfig, onFrame FrameHandler, logger *slog.Logger) *Listener {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ErrorPause == 0 {
		cfg.ErrorPause = defaultErrorPause
	}
	return &Listener{
		transport: t,
		cfg:       cfg,
		onFrame:   onFrame,
		logger:    logger,
		session:   uuid.NewString(),
	}
}

// Session identifies this listener in logs and API responses.
func (l *Listener) Session() string {
	return l.session
}

// Start opens the serial port and launches the read loop. An open
// failure is returned to the caller and leaves the listener inert.
func (l *Listener) Start() error {
	conn, err := l.transport.Open(l.cfg.Port, l.cfg.Baudrate)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.conn = conn
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.started = true
	l.mu.Unlock()
	go l.loop()
	l.logger.Info("serial listener started",
		"port", l.cfg.Port, "baudrate", l.cfg.Baudrate, "session", l.session)
	return nil
}

// Stop signals the read loop, closes the connection, and waits up to
// stopWait for the loop to exit. Safe to call before Start and safe to
// call more than once.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.started || l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	close(l.stop)
	l.conn.Close()
	done := l.done
	l.mu.Unlock()

	select {
	case <-done:
	case <-time.After(stopWait):
		l.logger.Warn("serial listener did not stop in time", "session", l.session)
	}
	l.logger.Info("serial listener stopped", "port", l.cfg.Port, "session", l.session)
}

func (l *Listener) loop() {
	defer close(l.done)
	buffer := ""
	chunk := make([]byte, 4096)
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		n, err := l.conn.Read(chunk)
		if err != nil {
			select {
			case <-l.stop:
				return
			default:
			}
			readErrors.Inc()
			l.logger.Error("serial read error", "error", err, "session", l.session)
			if !l.pause(l.cfg.ErrorPause) {
				return
			}
			continue
		}
		if n > 0 {
			// Invalid UTF-8 sequences are dropped, not fatal.
			buffer += strings.ToValidUTF8(string(chunk[:n]), "")
		}

		// One frame per iteration, even when no new bytes arrived: a
		// second frame buffered behind the first gets its turn on the
		// next poll.
		if frame, rest, ok := extractFrame(buffer); ok {
			buffer = rest
			var fields map[string]any
			if err := json.Unmarshal([]byte(frame), &fields); err != nil {
				framesInvalid.Inc()
				l.logger.Warn("invalid JSON received", "frame", frame, "session", l.session)
			} else {
				framesDecoded.Inc()
				l.onFrame(fields)
			}
		}

		if !l.pause(l.cfg.PollInterval) {
			return
		}
	}
}

// pause sleeps for d unless the stop signal fires first.
func (l *Listener) pause(d time.Duration) bool {
	select {
	case <-l.stop:
		return false
	case <-time.After(d):
		return true
	}
}
