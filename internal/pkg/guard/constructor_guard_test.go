package guard_test

import (
	"errors"
	"sync"
	"testing"

	"orders/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCommandIsNotConstructed = errors.New("command must be created via its constructor")

// confirmCommand mirrors how commands in this service embed the guard.
type confirmCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

func newConfirmCommand(orderID string) (confirmCommand, error) {
	if orderID == "" {
		return confirmCommand{}, errors.New("orderID is required")
	}
	return confirmCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c confirmCommand) Validate() error {
	return c.guard.Validate(errCommandIsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		given   error
		wantErr error
	}{
		{"constructed guard with custom error", guard.NewConstructorGuard(), errCommandIsNotConstructed, nil},
		{"constructed guard with nil error", guard.NewConstructorGuard(), nil, nil},
		{"zero guard returns the given error", guard.ConstructorGuard{}, errCommandIsNotConstructed,
			errCommandIsNotConstructed},
		{"zero guard falls back to the default error", guard.ConstructorGuard{}, nil,
			guard.ErrDefaultConstructorGuard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.given)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestConstructorGuard_InCommand(t *testing.T) {
	t.Run("constructed command validates", func(t *testing.T) {
		cmd, err := newConfirmCommand("42")
		require.NoError(t, err)

		require.NoError(t, cmd.Validate())
	})

	t.Run("zero value command is rejected", func(t *testing.T) {
		var cmd confirmCommand

		require.ErrorIs(t, cmd.Validate(), errCommandIsNotConstructed)
	})

	t.Run("failed constructor returns an unusable command", func(t *testing.T) {
		cmd, err := newConfirmCommand("")
		require.Error(t, err)

		require.ErrorIs(t, cmd.Validate(), errCommandIsNotConstructed)
	})

	t.Run("copies keep the guard", func(t *testing.T) {
		cmd, err := newConfirmCommand("42")
		require.NoError(t, err)

		copied := cmd
		copied.orderID = "43"

		require.NoError(t, copied.Validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- g.Validate(errCommandIsNotConstructed)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	for b.Loop() {
		_ = g.Validate(errCommandIsNotConstructed)
	}
}
