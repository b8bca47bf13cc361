package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"negative", -42, "-42 B"},
		{"bytes", 512, "512 B"},
		{"just under a KiB", 1023, "1023 B"},
		{"one KiB", 1024, "1.0 KiB"},
		{"fractional KiB", 1536, "1.5 KiB"},
		{"one MiB", 1024 * 1024, "1.0 MiB"},
		{"fractional MiB", 5*1024*1024 + 512*1024, "5.5 MiB"},
		{"one GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.size))
		})
	}
}
