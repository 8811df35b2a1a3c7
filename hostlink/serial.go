// Package hostlink is the host-facing diagnostic/status transport: a
// thin serial wrapper used for bring-up and field debugging, carrying
// only line-oriented status and command text. It never touches the tick
// context or block data.
package hostlink

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is the minimal transport hostlink needs, matching the teacher
// stack's serial.Port abstraction so a mock can stand in for tests.
type Port interface {
	io.ReadWriteCloser
	Flush() error
}

// Config holds serial port configuration for a diagnostic link.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout int // milliseconds, 0 = blocking
}

// DefaultConfig returns a sane default for local bring-up.
func DefaultConfig(device string) Config {
	return Config{Device: device, Baud: 115200, ReadTimeout: 100}
}

// nativePort wraps github.com/tarm/serial.
type nativePort struct {
	port *serial.Port
}

// Open opens a native serial port at the configured device and baud rate.
func Open(cfg Config) (Port, error) {
	sCfg := &serial.Config{Name: cfg.Device, Baud: cfg.Baud, ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond}
	p, err := serial.OpenPort(sCfg)
	if err != nil {
		return nil, fmt.Errorf("hostlink: open %s: %w", cfg.Device, err)
	}
	return &nativePort{port: p}, nil
}

func (p *nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *nativePort) Close() error                { return p.port.Close() }
func (p *nativePort) Flush() error                { return nil }

// Link carries line-oriented status text out over a Port and hands
// received lines back one at a time through ReadCommand.
type Link struct {
	port    Port
	scanner *bufio.Scanner
}

// NewLink wraps an already-open Port.
func NewLink(port Port) *Link {
	return &Link{port: port, scanner: bufio.NewScanner(port)}
}

// Status writes one line of status text, terminated with a newline.
func (l *Link) Status(format string, args ...any) error {
	line := fmt.Sprintf(format, args...) + "\n"
	_, err := l.port.Write([]byte(line))
	return err
}

// ReadCommand blocks for the next newline-terminated line from the
// link, with leading/trailing whitespace left to the caller to trim.
func (l *Link) ReadCommand() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	return l.scanner.Text(), true
}

// Close closes the underlying port.
func (l *Link) Close() error {
	return l.port.Close()
}
