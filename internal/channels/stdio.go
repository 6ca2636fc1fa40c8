package channels

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// maxFrameBytes bounds a single newline-delimited request frame.
const maxFrameBytes = 1024 * 1024

// StdioChannel serves newline-delimited JSON-RPC over a reader/writer pair,
// normally the process stdin/stdout. Requests are handled one at a time in
// arrival order.
type StdioChannel struct {
	handler *Handler
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
}

// NewStdio creates a stdio channel bound to the given streams.
func NewStdio(handler *Handler, in io.Reader, out io.Writer, logger *slog.Logger) *StdioChannel {
	return &StdioChannel{
		handler: handler,
		in:      in,
		out:     out,
		logger:  logger.With("channel", "stdio"),
	}
}

// Run reads frames until the input closes or the context is cancelled.
func (c *StdioChannel) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameBytes)

	c.logger.Info("stdio channel started")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := c.handler.Handle(ctx, line)
		if resp == nil {
			continue
		}
		if _, err := c.out.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	c.logger.Info("stdio channel closed")
	return nil
}
