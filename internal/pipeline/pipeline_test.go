package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRunExecutesInOrder checks ordering and the success report.
func TestRunExecutesInOrder(t *testing.T) {
	t.Parallel()

	var order []string

	record := func(name string) Step {
		return Step{
			Name: name,
			Run: func(context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	steps := []Step{record("first"), record("second"), record("third")}

	report, err := Run(context.Background(), steps)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, order)
	require.Len(t, report.Results, 3)
	require.Nil(t, report.Failed())
}

// TestRunHaltsAtFirstFailure ensures later steps never start and the error names the step.
func TestRunHaltsAtFirstFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("tool exploded")
	thirdRan := false

	steps := []Step{
		{Name: "ok", Run: func(context.Context) error { return nil }},
		{Name: "breaks", Run: func(context.Context) error { return boom }},
		{Name: "never", Run: func(context.Context) error {
			thirdRan = true
			return nil
		}},
	}

	report, err := Run(context.Background(), steps)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "breaks")
	require.False(t, thirdRan)

	require.Len(t, report.Results, 2)

	failed := report.Failed()
	require.NotNil(t, failed)
	require.Equal(t, "breaks", failed.Name)
}

// TestRunCanceledContext aborts before starting the next step.
func TestRunCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	steps := []Step{
		{Name: "cancels", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		{Name: "skipped", Run: func(context.Context) error {
			t.Fatal("step ran after cancellation")
			return nil
		}},
	}

	report, err := Run(ctx, steps)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Results, 1)
}
