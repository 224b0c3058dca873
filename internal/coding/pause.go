package coding

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"petrarch/internal/services"
)

// Pauser suspends the run for operator confirmation. A non-nil error
// wrapping services.ErrCancelled stops the whole run.
type Pauser interface {
	Pause(ctx context.Context, label string) error
}

// PauserFunc adapts a function to the Pauser interface.
type PauserFunc func(ctx context.Context, label string) error

// Pause implements Pauser.
func (f PauserFunc) Pause(ctx context.Context, label string) error {
	return f(ctx, label)
}

// PromptPauser asks on out and waits for a line on in. An empty line
// continues; anything else, or closed input, cancels.
type PromptPauser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptPauser builds a PromptPauser.
func NewPromptPauser(in io.Reader, out io.Writer) *PromptPauser {
	return &PromptPauser{in: bufio.NewReader(in), out: out}
}

// Pause implements Pauser. The read itself is not interruptible; ctx is
// checked before prompting.
func (p *PromptPauser) Pause(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return services.Wrap(services.ErrCancelled, "coding", "pause", "context done", err)
	}
	fmt.Fprintf(p.out, "%s: press Enter to continue...", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return services.Wrap(services.ErrCancelled, "coding", "pause", "operator input closed", err)
	}
	if strings.TrimRight(line, "\r\n") != "" {
		return services.Wrap(services.ErrCancelled, "coding", "pause", "stopped by operator", nil)
	}
	return nil
}
