package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("connection reset")

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"object not found",
			errs.NewObjectNotFoundError("orderID", "6f1c"),
			"object not found: 6f1c",
		},
		{
			"object not found with cause",
			errs.NewObjectNotFoundErrorWithCause("orderID", "6f1c", errStorage),
			"object not found: param is: orderID, ID is: 6f1c (cause: connection reset)",
		},
		{
			"object not found with a non string id",
			errs.NewObjectNotFoundError("itemIndex", 7),
			"object not found: %!s(int=7)",
		},
		{
			"value is invalid",
			errs.NewValueIsInvalidError("paymentMethod"),
			"value is invalid: paymentMethod",
		},
		{
			"value is invalid with cause",
			errs.NewValueIsInvalidErrorWithCause("status", errors.New(`"LOST" is not a valid status`)),
			`value is invalid: status (cause: "LOST" is not a valid status)`,
		},
		{
			"value is out of range",
			errs.NewValueIsOutOfRangeError("quantity", 120, 1, 99),
			"value is invalid: 120 is quantity, min value is 1, max value is 99",
		},
		{
			"value is out of range with cause",
			errs.NewValueIsOutOfRangeErrorWithCause("batchSize", 0, 1, 1000, errors.New("empty batch")),
			"value is invalid: 0 is batchSize, min value is 1, max value is 1000 (cause: empty batch)",
		},
		{
			"value is required",
			errs.NewValueIsRequiredError("deliveryAddress"),
			"value is required: deliveryAddress",
		},
		{
			"value is required with cause",
			errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item")),
			"value is required: items (cause: an order needs at least one item)",
		},
		{
			"version is invalid",
			errs.NewVersionIsInvalidErrorWithCause("version"),
			"version is invalid: version",
		},
		{
			"version is invalid with cause",
			errs.NewVersionIsInvalidError("version", errors.New("stored 3, got 2")),
			"version is invalid: version (cause: stored 3, got 2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsMatchTheirSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundErrorWithCause("orderID", "1", errStorage), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidErrorWithCause("status", errStorage), errs.ErrValueIsInvalid},
		{"value is out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99), errs.ErrValueIsOutOfRange},
		{"value is required", errs.NewValueIsRequiredError("storeID"), errs.ErrValueIsRequired},
		{"version is invalid", errs.NewVersionIsInvalidError("version", errStorage), errs.ErrVersionIsInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("save order: %w", tt.err), tt.sentinel)
			assert.Equal(t, tt.sentinel, errors.Unwrap(tt.err))
		})
	}
}

func TestErrorDetailsAreReachable(t *testing.T) {
	joined := errors.Join(
		errs.NewValueIsRequiredError("customerID"),
		errs.NewValueIsOutOfRangeErrorWithCause("quantity", 150, 1, 99, errStorage),
	)

	var rangeErr *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, joined, &rangeErr)
	assert.Equal(t, "quantity", rangeErr.ParamName)
	assert.Equal(t, 150, rangeErr.Value)
	assert.Equal(t, 1, rangeErr.Min)
	assert.Equal(t, 99, rangeErr.Max)
	assert.Equal(t, errStorage, rangeErr.Cause)

	var requiredErr *errs.ValueIsRequiredError
	require.ErrorAs(t, joined, &requiredErr)
	assert.Equal(t, "customerID", requiredErr.ParamName)
	assert.NoError(t, requiredErr.Cause)
}

func TestMessagesStayOnOneLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("deliveryAddress", "1 Main St\nApt 2", 0, 10)

	assert.Contains(t, err.Error(), "1 Main St Apt 2")
	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
}

func TestIsValidation(t *testing.T) {
	t.Run("validation kinds are recognised through joins and wraps", func(t *testing.T) {
		assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("customerID")))
		assert.True(t, errs.IsValidation(fmt.Errorf("create: %w", errs.NewValueIsInvalidError("memo"))))
		assert.True(t, errs.IsValidation(errors.Join(errors.New("other"),
			errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99))))
	})

	t.Run("non validation kinds are not", func(t *testing.T) {
		assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
		assert.False(t, errs.IsValidation(errs.NewVersionIsInvalidErrorWithCause("version")))
		assert.False(t, errs.IsValidation(nil))
	})
}
