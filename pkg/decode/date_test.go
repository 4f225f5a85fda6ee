package decode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPackedDate(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want time.Time
		set  bool
	}{
		{
			name: "day 100 of 2023",
			in:   []byte{0x20, 0x23, 0x10, 0x0F},
			want: time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC),
			set:  true,
		},
		{
			name: "first day of year",
			in:   []byte{0x20, 0x24, 0x00, 0x1F},
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			set:  true,
		},
		{
			name: "leap day 366 of 2024",
			in:   []byte{0x20, 0x24, 0x36, 0x6F},
			want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			set:  true,
		},
		{
			name: "unset date",
			in:   []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "day zero",
			in:   []byte{0x20, 0x23, 0x00, 0x0F},
		},
		{
			name: "day out of range",
			in:   []byte{0x20, 0x23, 0x40, 0x0F},
		},
		{
			name: "day 366 of a non-leap year",
			in:   []byte{0x20, 0x23, 0x36, 0x6F},
		},
		{
			name: "non-decimal digits",
			in:   []byte{0xAB, 0xCD, 0x10, 0x0F},
		},
		{
			name: "short field",
			in:   []byte{0x20, 0x23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackedDate(tt.in)
			assert.Equal(t, tt.set, got.Set)
			if tt.set {
				assert.True(t, got.Date.Equal(tt.want), "got %v, want %v", got.Date, tt.want)
			}
		})
	}
}
