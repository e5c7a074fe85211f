package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestCoach(t *testing.T) *mindbuffer.Coach {
	t.Helper()
	coach, err := mindbuffer.New(
		mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)),
		mindbuffer.WithFlowOptions(flow.WithDropFunc(func() int { return 15 })),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = coach.Close(context.Background()) })
	return coach
}

func TestRunSession_Completes(t *testing.T) {
	coach := newTestCoach(t)
	input := strings.Join([]string{
		"missed the bus", "", "I am always late", "stood in the rain",
		"r", "r", "r", "9", "2",
		"s", "1",
	}, "\n") + "\n"
	var out bytes.Buffer

	record, err := RunSession(context.Background(), coach, SessionOptions{
		Input:         strings.NewReader(input),
		Output:        &out,
		InitialStress: 90,
		Headless:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 75, record.HRVEnd)
	assert.Equal(t, 2, record.RejectedLensCount)
	assert.Equal(t, 1, record.RejectedActionCount)
	assert.Equal(t, "missed the bus", record.ABC.A)

	text := out.String()
	assert.Contains(t, text, "Type something")
	assert.Contains(t, text, domain.DefaultScript().LensesLimit)
	assert.Contains(t, text, "Stress 90 → 75")
	assert.Contains(t, text, "Archived")

	sessions, err := coach.Archive.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestRunSession_Quit(t *testing.T) {
	coach := newTestCoach(t)
	var out bytes.Buffer

	record, err := RunSession(context.Background(), coach, SessionOptions{
		Input:         strings.NewReader("first answer\nquit\n"),
		Output:        &out,
		InitialStress: 60,
	})
	assert.ErrorIs(t, err, errQuit)
	assert.Nil(t, record)
	assert.NoError(t, HandleExecutionError(err))
	assert.Contains(t, out.String(), "Session discarded.")
	assert.Contains(t, out.String(), "] > ")

	_, active := coach.Sessions.Active()
	assert.False(t, active)
	sessions, err := coach.Archive.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRunSession_EOF(t *testing.T) {
	coach := newTestCoach(t)

	_, err := RunSession(context.Background(), coach, SessionOptions{
		Input:    strings.NewReader(""),
		Output:   io.Discard,
		Headless: true,
	})
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, HandleExecutionError(err))
}

func TestRunSession_Cancelled(t *testing.T) {
	coach := newTestCoach(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()
	_, err := RunSession(ctx, coach, SessionOptions{Input: pr, Output: io.Discard, Headless: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSession_RequiresIO(t *testing.T) {
	_, err := RunSession(context.Background(), newTestCoach(t), SessionOptions{})
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	cards := []string{"a", "b", "c"}
	got, ok := pick("2", cards)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	for _, bad := range []string{"0", "4", "x", ""} {
		_, ok := pick(bad, cards)
		assert.False(t, ok, bad)
	}
}

func TestRunSession_QuitLeavesNoReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent(),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	coach, err := mindbuffer.New(mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)))
	require.NoError(t, err)

	// Lines after quit are never read by the session.
	input := strings.NewReader("first answer\nquit\nleft over\nand more\n")
	_, err = RunSession(context.Background(), coach, SessionOptions{
		Input:         input,
		Output:        io.Discard,
		InitialStress: 60,
		Headless:      true,
	})
	require.ErrorIs(t, err, errQuit)
	require.NoError(t, coach.Close(context.Background()))
}

func TestReadLines_StopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	lines := readLines(strings.NewReader("a\nb\nc\n"), done)
	assert.Equal(t, "a", <-lines)
	close(done)

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-lines:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
