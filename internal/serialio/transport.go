package serialio

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Conn is an open serial connection. Read returns (0, nil) when no bytes
// arrive within the connection's read timeout, so callers can poll
// without blocking indefinitely.
type Conn interface {
	Read(p []byte) (int, error)
	Close() error
}

// Transport opens serial connections and enumerates ports. There is one
// production implementation per platform capability; tests substitute
// fakes. The implementation is chosen at composition time.
type Transport interface {
	Open(port string, baudrate int) (Conn, error)
	ListPorts() ([]string, error)
}

// HostTransport talks to the host OS serial devices via go.bug.st/serial.
type HostTransport struct {
	// ReadTimeout bounds each Read so the listener can observe its stop
	// signal. Zero means the default poll interval.
	ReadTimeout time.Duration
}

func (t HostTransport) Open(port string, baudrate int) (Conn, error) {
	mode := &serial.Mode{BaudRate: baudrate}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", port, err)
	}
	timeout := t.ReadTimeout
	if timeout == 0 {
		timeout = defaultPollInterval
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", port, err)
	}
	return p, nil
}

func (t HostTransport) ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
