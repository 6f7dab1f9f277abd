package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const pollInterval = 100 * time.Millisecond

// Device is a bidirectional serial connection. Read returns (0, nil)
// when no bytes arrive within the device's read timeout.
type Device interface {
	io.ReadWriter
	Close() error
}

// Session drives one interactive conversation with the device: sending
// protocol commands and reading its line-oriented responses.
type Session struct {
	dev     Device
	out     io.Writer
	logPath string
}

func NewSession(dev Device, out io.Writer, logPath string) *Session {
	return &Session{dev: dev, out: out, logPath: logPath}
}

// Send writes one newline-terminated command to the device.
func (s *Session) Send(cmd string) error {
	if _, err := s.dev.Write([]byte(cmd + "\n")); err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	fmt.Fprintf(s.out, ">> Sent: %s\n", cmd)
	return nil
}

// Ping checks the connection.
func (s *Session) Ping() error { return s.Send("PING") }

// SetupMode switches the device into setup mode.
func (s *Session) SetupMode() error { return s.Send("SETUP_MODE") }

// NormalMode switches the device into normal mode.
func (s *Session) NormalMode() error { return s.Send("NORMAL_MODE") }

// RequestElement asks the device for an element by atomic number.
func (s *Session) RequestElement(number string) error {
	return s.Send("ELEMENT " + number)
}

// Listen reads device output line by line until stop fires. A line that
// is a whole JSON object is pretty-printed and appended to the record
// log; anything else echoes raw.
func (s *Session) Listen(stop <-chan struct{}) {
	pending := ""
	chunk := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := s.dev.Read(chunk)
		if err != nil {
			fmt.Fprintf(s.out, "Read error: %v\n", err)
			if !sleepOrStop(stop, time.Second) {
				return
			}
			continue
		}
		if n > 0 {
			pending += string(chunk[:n])
			for {
				idx := strings.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]
				s.handleLine(line)
			}
			continue
		}

		if !sleepOrStop(stop, pollInterval) {
			return
		}
	}
}

func (s *Session) handleLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}") {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(line), "", "  "); err == nil {
			fmt.Fprintf(s.out, "<< Received JSON: %s\n", pretty.String())
			if err := AppendRecord(s.logPath, line); err != nil {
				fmt.Fprintf(s.out, "Could not save record log: %v\n", err)
			}
			return
		}
		fmt.Fprintf(s.out, "<< [raw data]: %s\n", line)
		return
	}
	fmt.Fprintf(s.out, "<< %s\n", line)
}

// AppendRecord appends one timestamped line to the record log:
// an RFC3339 timestamp, a separator, and the JSON payload compacted.
func AppendRecord(path, rawJSON string) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(rawJSON)); err != nil {
		return fmt.Errorf("compact record: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open record log: %w", err)
	}
	defer f.Close()
	line := time.Now().Format(time.RFC3339) + " | " + compact.String() + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

func sleepOrStop(stop <-chan struct{}, d time.Duration) bool {
	select {
	case <-stop:
		return false
	case <-time.After(d):
		return true
	}
}
