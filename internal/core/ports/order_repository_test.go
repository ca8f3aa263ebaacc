package ports_test

import (
	"math"
	"testing"

	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ports.PageRequest
		want ports.PageRequest
	}{
		{"defaults an empty request", ports.PageRequest{}, ports.PageRequest{Page: 0, Size: ports.DefaultPageSize}},
		{"negative page becomes first page", ports.PageRequest{Page: -3, Size: 10}, ports.PageRequest{Page: 0, Size: 10}},
		{"negative size becomes default", ports.PageRequest{Page: 1, Size: -1}, ports.PageRequest{Page: 1, Size: ports.DefaultPageSize}},
		{"oversized page is capped", ports.PageRequest{Page: 2, Size: 1000}, ports.PageRequest{Page: 2, Size: ports.MaxPageSize}},
		{"huge page is pinned", ports.PageRequest{Page: 100000000000000000, Size: 100}, ports.PageRequest{Page: ports.MaxPage, Size: 100}},
		{"max int page is pinned", ports.PageRequest{Page: math.MaxInt, Size: math.MaxInt}, ports.PageRequest{Page: ports.MaxPage, Size: ports.MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	t.Run("counts whole pages", func(t *testing.T) {
		assert.Equal(t, 60, ports.PageRequest{Page: 3, Size: 20}.Offset())
	})

	t.Run("never overflows once normalized", func(t *testing.T) {
		for _, page := range []int{ports.MaxPage, ports.MaxPage + 1, 100000000000000000, math.MaxInt} {
			for _, size := range []int{1, ports.DefaultPageSize, ports.MaxPageSize, math.MaxInt} {
				offset := ports.PageRequest{Page: page, Size: size}.Normalize().Offset()

				assert.GreaterOrEqual(t, offset, 0, "page=%d size=%d", page, size)
			}
		}
	})
}
