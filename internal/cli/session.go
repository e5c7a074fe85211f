package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/presentation/tui"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
)

// SessionOptions configures an interactive rescue session.
type SessionOptions struct {
	Input         io.Reader
	Output        io.Writer
	InitialStress int
	// Headless drops the banner and the countdown from the prompt.
	Headless bool
	Version  string
	// Renderer transforms markdown before output. Nil prints it raw.
	Renderer func(string) (string, error)
}

// console owns the terminal side of one session.
type console struct {
	opts      SessionOptions
	lines     <-chan string
	countdown *tui.Countdown
	printed   int
}

// RunSession walks one flow from chat to result over line-based IO and
// archives it. Typing q, quit or exit aborts the flow and returns errQuit.
func RunSession(ctx context.Context, coach *mindbuffer.Coach, opts SessionOptions) (*domain.SessionData, error) {
	if opts.Input == nil || opts.Output == nil {
		return nil, fmt.Errorf("input and output must be set")
	}
	done := make(chan struct{})
	defer close(done)
	c := &console{
		opts:      opts,
		lines:     readLines(opts.Input, done),
		countdown: tui.NewCountdown(opts.Output),
	}
	if !opts.Headless {
		tui.PrintBanner(opts.Output, opts.Version)
	}

	id, f, err := coach.Sessions.Open(ctx, opts.InitialStress)
	if err != nil {
		return nil, err
	}

	if err := c.drive(ctx, f); err != nil {
		_ = coach.Sessions.Abort(context.WithoutCancel(ctx), id)
		if errors.Is(err, errQuit) {
			printSystemMessage(opts.Output, "Session discarded.")
		}
		return nil, err
	}

	record, err := coach.Sessions.Complete(ctx, id)
	if err != nil {
		return record, err
	}
	c.printRecord(record)
	return record, nil
}

func (c *console) drive(ctx context.Context, f *flow.Flow) error {
	for {
		c.printTranscript(f)

		switch st := f.Stage().(type) {
		case flow.Chat:
			if st.Sub == domain.ChatDone {
				if err := f.GenerateLenses(ctx); err != nil {
					return err
				}
				continue
			}
			text, err := c.prompt(ctx, f)
			if err != nil {
				return err
			}
			err = f.Submit(ctx, text)
			switch {
			case errors.Is(err, domain.ErrEmptyInput):
				printSystemMessage(c.opts.Output, "Type something, even a single word.")
			case errors.Is(err, domain.ErrInputTooLarge), errors.Is(err, domain.ErrInvalidUTF8):
				printSystemMessage(c.opts.Output, "That answer could not be read: %v", err)
			case err != nil:
				return err
			}

		case flow.Lens:
			c.printLenses(st.Cards)
			choice, err := c.prompt(ctx, f)
			if err != nil {
				return err
			}
			if choice == "r" {
				if err := f.RefreshLenses(ctx); errors.Is(err, domain.ErrRefreshLimit) {
					printSystemMessage(c.opts.Output, "%s", f.LimitNotice())
				} else if err != nil {
					return err
				}
				continue
			}
			if card, ok := pick(choice, st.Cards); ok {
				if err := f.SelectLens(ctx, card.ID); err != nil {
					return err
				}
			}

		case flow.Action:
			c.printActions(st.Cards)
			choice, err := c.prompt(ctx, f)
			if err != nil {
				return err
			}
			if choice == "s" {
				if err := f.ShuffleActions(ctx); err != nil {
					return err
				}
				continue
			}
			if card, ok := pick(choice, st.Cards); ok {
				if err := f.SelectAction(ctx, card.ID); err != nil {
					return err
				}
			}

		case flow.Result:
			initial, final := f.Stress()
			c.render(fmt.Sprintf("## Done\n\nLens **%s**, action **%s**.\n\nStress %d → %d.\n",
				st.Lens.Title, st.Action.Title, initial, final))
			return nil
		}
	}
}

// prompt reads one trimmed line. Quit words end the session.
func (c *console) prompt(ctx context.Context, f *flow.Flow) (string, error) {
	if c.opts.Headless {
		fmt.Fprint(c.opts.Output, "> ")
	} else {
		fmt.Fprintf(c.opts.Output, "[%s] > ", c.countdown.Format(f.Remaining(), f.Urgent()))
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return "", errQuit
		}
		return line, nil
	}
}

func (c *console) printTranscript(f *flow.Flow) {
	transcript := f.Transcript()
	for _, m := range transcript[min(c.printed, len(transcript)):] {
		if m.Sender == domain.SenderBot {
			fmt.Fprintf(c.opts.Output, "bot: %s\n", m.Text)
		}
	}
	c.printed = len(transcript)
}

func (c *console) printLenses(cards []domain.LensCard) {
	var b strings.Builder
	b.WriteString("## Pick a lens\n\n")
	for i, card := range cards {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, card.Title, card.Description)
	}
	b.WriteString("\n_Type a number, or r for new lenses._\n")
	c.render(b.String())
}

func (c *console) printActions(cards []domain.MicroAction) {
	var b strings.Builder
	b.WriteString("## Pick a micro-action\n\n")
	for i, card := range cards {
		fmt.Fprintf(&b, "%d. **%s** (%s): %s\n", i+1, card.Title, card.Duration, card.Description)
	}
	b.WriteString("\n_Type a number, or s to shuffle._\n")
	c.render(b.String())
}

func (c *console) printRecord(r *domain.SessionData) {
	printSystemMessage(c.opts.Output, "Archived %q with growth %d.", r.ThemeName, r.GrowthValue)
}

func (c *console) render(markdown string) {
	out := markdown
	if c.opts.Renderer != nil {
		if rendered, err := c.opts.Renderer(markdown); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(c.opts.Output, strings.TrimSpace(out))
}

// pick resolves a 1-based choice.
func pick[T any](choice string, cards []T) (T, bool) {
	var zero T
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(cards) {
		return zero, false
	}
	return cards[n-1], true
}

// readLines feeds r line by line until EOF or until done is closed. A read
// already blocked on r still finishes first.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}
