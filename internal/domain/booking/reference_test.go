//go:build unit

package booking_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^BK-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestReferenceGenerator(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	never := func(context.Context, string) (bool, error) { return false, nil }

	t.Run("format", func(t *testing.T) {
		ref, err := booking.NewReferenceGenerator(clk).Generate(ctx, never)
		require.NoError(t, err)
		assert.Regexp(t, referencePattern, ref)
	})

	t.Run("unique over many generations", func(t *testing.T) {
		gen := booking.NewReferenceGenerator(clk)
		seen := map[string]struct{}{}
		exists := func(_ context.Context, ref string) (bool, error) {
			_, ok := seen[ref]
			return ok, nil
		}
		for i := 0; i < 2000; i++ {
			ref, err := gen.Generate(ctx, exists)
			require.NoError(t, err)
			seen[ref] = struct{}{}
		}
		assert.Len(t, seen, 2000)
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		exists := func(context.Context, string) (bool, error) {
			calls++
			return calls < 3, nil
		}
		_, err := booking.NewReferenceGenerator(clk).Generate(ctx, exists)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the attempt bound", func(t *testing.T) {
		calls := 0
		always := func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		}
		// a constant random source makes every candidate identical
		gen := booking.NewReferenceGenerator(clk, booking.WithRandomSource(bytes.NewReader(make([]byte, 1024))))
		_, err := gen.Generate(ctx, always)
		require.ErrorIs(t, err, booking.ErrReferenceExhausted)
		assert.Equal(t, booking.DefaultMaxRefAttempts, calls)
	})

	t.Run("store errors are returned", func(t *testing.T) {
		boom := errors.New("store down")
		_, err := booking.NewReferenceGenerator(clk).Generate(ctx, func(context.Context, string) (bool, error) {
			return false, boom
		})
		require.ErrorIs(t, err, boom)
	})
}
