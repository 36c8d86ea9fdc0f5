package bytesize

import (
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{
			name:  "bytes",
			input: 512,
			want:  "512B",
		},
		{
			name:  "zero",
			input: 0,
			want:  "0B",
		},
		{
			name:  "kilobytes",
			input: 1536,
			want:  "1.5KB",
		},
		{
			name:  "megabytes",
			input: 512 * 1024 * 1024,
			want:  "512.0MB",
		},
		{
			name:  "gigabytes",
			input: 1024 * 1024 * 1024,
			want:  "1.0GB",
		},
		{
			name:  "terabytes",
			input: int64(1024) * 1024 * 1024 * 1024,
			want:  "1.0TB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
