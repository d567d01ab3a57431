// Package sender transmits numbered, checksummed G-code lines to a
// RepRap style controller, waiting for an acknowledgement after each line.
package sender

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mastercactapus/gcline/gcode"
	"go.uber.org/zap"
)

const (
	historySize = 64

	// maxResends bounds the resend requests honoured while waiting for a
	// single acknowledgement.
	maxResends = 10
)

// ErrDevice is wrapped by errors reported by the controller.
var ErrDevice = errors.New("device error")

// Conn represents a line-acknowledged connection to a controller.
type Conn struct {
	rw   io.ReadWriter
	scan *bufio.Scanner
	log  *zap.Logger

	mx      sync.Mutex
	next    int64
	history map[int64]string
}

// NewConn creates a new Conn using the provided ReadWriter for data. Line
// numbering starts at 1.
func NewConn(rw io.ReadWriter, log *zap.Logger) *Conn {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conn{
		rw:      rw,
		scan:    bufio.NewScanner(rw),
		log:     log,
		next:    1,
		history: make(map[int64]string, historySize),
	}
}

// Close closes the underlying ReadWriter, if it implements io.Closer.
func (c *Conn) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Next returns the line number the next sent line will carry.
func (c *Conn) Next() int64 {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.next
}

// Reset tells the controller to restart line numbering and waits for it to
// acknowledge.
func (c *Conn) Reset(ctx context.Context) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	err := c.write(gcode.Parse("M110 N0").Render())
	if err != nil {
		return err
	}
	c.next = 1
	c.history = make(map[int64]string, historySize)
	return c.waitAck(ctx)
}

// Send renders l with the next line number and blocks until the controller
// acknowledges it. Empty lines are skipped.
func (c *Conn) Send(ctx context.Context, l *gcode.Line) error {
	if l.Empty() {
		return nil
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	n := c.next
	text := l.RenderNumbered(n)
	err := c.write(text)
	if err != nil {
		return err
	}
	c.record(n, text)
	c.next++

	return c.waitAck(ctx)
}

// SendJob sends every line of r with mul applied, returning the number
// of lines sent.
func (c *Conn) SendJob(ctx context.Context, r gcode.Reader, mul gcode.Multipliers) (int, error) {
	var sent int
	for {
		l, err := r.Read()
		if err == io.EOF {
			return sent, nil
		}
		if err != nil {
			return sent, err
		}
		if l.Empty() {
			continue
		}
		lc := *l
		lc.Multipliers = mul
		err = c.Send(ctx, &lc)
		if err != nil {
			return sent, fmt.Errorf("send line %q: %w", l.Raw(), err)
		}
		sent++
	}
}

func (c *Conn) record(n int64, text string) {
	c.history[n] = text
	delete(c.history, n-historySize)
}

func (c *Conn) write(text string) error {
	c.log.Debug("send", zap.String("line", text))
	_, err := io.WriteString(c.rw, text+"\n")
	return err
}

// resendLine extracts the requested line number from `Resend: N` or `rs N`.
func resendLine(s string) (int64, bool) {
	var rest string
	switch {
	case strings.HasPrefix(s, "Resend:"):
		rest = strings.TrimPrefix(s, "Resend:")
	case strings.HasPrefix(s, "rs "):
		rest = strings.TrimPrefix(s, "rs ")
	default:
		return 0, false
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "N")
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// waitAck reads responses until the sent line is acknowledged. A resend
// request rewrites the recorded lines from the requested number on, each of
// which is acknowledged again. A device error is returned only if it was not
// followed by a resend. More than maxResends requests fail with ErrDevice.
func (c *Conn) waitAck(ctx context.Context) error {
	var devErr error
	pending := 1
	resends := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.scan.Scan() {
			if err := c.scan.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		resp := strings.TrimSpace(c.scan.Text())

		switch {
		case strings.HasPrefix(resp, "ok"):
			pending--
			if pending == 0 {
				return devErr
			}
		case strings.HasPrefix(resp, "Error:"), strings.HasPrefix(resp, "!!"):
			c.log.Warn("device error", zap.String("response", resp))
			if devErr == nil {
				devErr = fmt.Errorf("%w: %s", ErrDevice, resp)
			}
		default:
			n, ok := resendLine(resp)
			if !ok {
				c.log.Debug("recv", zap.String("response", resp))
				continue
			}
			if _, ok := c.history[n]; !ok {
				return fmt.Errorf("resend requested for unknown line %d", n)
			}
			resends++
			if resends > maxResends {
				return fmt.Errorf("%w: line %d: more than %d resend requests", ErrDevice, n, maxResends)
			}
			c.log.Info("resend", zap.Int64("line", n))
			for i := n; i < c.next; i++ {
				text, ok := c.history[i]
				if !ok {
					return fmt.Errorf("resend requested for unknown line %d", i)
				}
				err := c.write(text)
				if err != nil {
					return err
				}
				pending++
			}
			devErr = nil
		}
	}
}
