package notifier

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// CommandHandler is called for every line read from the prompt.
// Returning true ends the session.
type CommandHandler func(ctx context.Context, line string) (quit bool)

// ConsoleNotifier writes reports to the terminal and reads symbols from it.
type ConsoleNotifier struct {
	Out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{Out: out}
}

// Send writes text as-is.
func (c *ConsoleNotifier) Send(text string) error {
	if _, err := io.WriteString(c.Out, text); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}

// StartPrompt prompts for input and dispatches each line to handler until the
// handler asks to quit, input ends, or ctx is cancelled. Only a read failure
// is returned as an error.
func (c *ConsoleNotifier) StartPrompt(ctx context.Context, in io.Reader, handler CommandHandler) error {
	scanner := bufio.NewScanner(in)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("prompt stopped")
			return nil
		default:
		}

		if err := c.Send(Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			// EOF ends the session like quit.
			_ = c.Send("\n")
			return nil
		}
		if handler(ctx, scanner.Text()) {
			return nil
		}
	}
}
