package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should create distinct non-zero identifiers", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsZero())
		assert.False(t, a.IsEqual(b))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse accepted notations", func(t *testing.T) {
		for _, in := range []string{
			knownID,
			"{" + knownID + "}",
			"urn:uuid:" + knownID,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)
			require.NoError(t, err, in)
			assert.Equal(t, knownID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", knownID + "-extra"} {
			_, err := kernel.UUIDFromString(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil uuid parses but does not validate", func(t *testing.T) {
		id, err := kernel.UUIDFromString(uuid.Nil.String())

		require.NoError(t, err)
		assert.True(t, id.IsZero())
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip raw bytes", func(t *testing.T) {
		src := uuid.MustParse(knownID)

		id, err := kernel.UUIDFromBytes(src[:])

		require.NoError(t, err)
		assert.Equal(t, knownID, id.String())
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject all zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFrom(t *testing.T) {
	t.Run("should keep storage values as is", func(t *testing.T) {
		raw := uuid.MustParse(knownID)

		assert.Equal(t, raw, kernel.UUIDFrom(raw).Bytes())
		assert.True(t, kernel.UUIDFrom(uuid.Nil).IsZero())
	})
}

func TestUUID_ValidateAs(t *testing.T) {
	t.Run("should name the missing parameter", func(t *testing.T) {
		var id kernel.UUID

		err := id.ValidateAs("storeID")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "storeID")
		assert.NoError(t, kernel.NewUUID().ValidateAs("storeID"))
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("returned value is a copy", func(t *testing.T) {
		id := kernel.NewUUID()
		before := id.String()

		raw := id.Bytes()
		for i := range raw {
			raw[i] = 0xFF
		}

		assert.Equal(t, before, id.String())
	})
}
