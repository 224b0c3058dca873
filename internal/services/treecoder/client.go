// Package treecoder runs the external syntactic pattern matcher as a child
// process, one invocation per sentence.
//
// The request is written to the process's stdin as JSON and the process
// answers on stdout with {"events": [["SRC","TGT","CODE"], ...]}.
package treecoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"petrarch/internal/corpus"
	"petrarch/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithArgs sets extra arguments passed before the request is written.
func WithArgs(args ...string) Option {
	return func(c *CLI) {
		c.args = append([]string(nil), args...)
	}
}

// WithTimeout bounds a single invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithEnv adds KEY=VALUE entries to the child environment.
func WithEnv(env ...string) Option {
	return func(c *CLI) {
		c.env = append(c.env, env...)
	}
}

// CLI wraps the external coder command.
type CLI struct {
	binary  string
	args    []string
	env     []string
	timeout time.Duration
}

// NewCLI constructs a client for binary.
func NewCLI(binary string, opts ...Option) *CLI {
	cli := &CLI{binary: strings.TrimSpace(binary), timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

type response struct {
	Events [][]string `json:"events"`
	Error  string     `json:"error,omitempty"`
}

// Code sends one sentence to the external coder.
func (c *CLI) Code(ctx context.Context, req services.CodeRequest) ([]corpus.Event, error) {
	if c.binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "treecoder", "code", "coder command not configured", nil)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, services.Wrap(services.ErrCoder, "treecoder", "encode request", "", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := commandContext(ctx, c.binary, c.args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(payload)
	if len(c.env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, c.env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrCoder, "treecoder", "code", fmt.Sprintf("timed out after %s", c.timeout), err)
		}
		return nil, services.Wrap(services.ErrCoder, "treecoder", "code", strings.TrimSpace(stderr.String()), err)
	}

	var resp response
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return nil, services.Wrap(services.ErrCoder, "treecoder", "decode response", "", err)
	}
	if resp.Error != "" {
		return nil, services.Wrap(services.ErrCoder, "treecoder", "code", resp.Error, nil)
	}

	events := make([]corpus.Event, 0, len(resp.Events))
	for i, triple := range resp.Events {
		if len(triple) != 3 {
			return nil, services.Wrap(services.ErrCoder, "treecoder", "decode response",
				fmt.Sprintf("event %d has %d fields, want 3", i, len(triple)), nil)
		}
		events = append(events, corpus.Event{Source: triple[0], Target: triple[1], Code: triple[2]})
	}
	return events, nil
}

var _ services.SentenceCoder = (*CLI)(nil)
