package format

import (
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1073741824, "1.0 GB"},
		{1099511627776, "1.0 TB"},
	}
	for _, tt := range tests {
		if got := Bytes(tt.n); got != tt.want {
			t.Errorf("Bytes(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}

func TestSizePtr(t *testing.T) {
	if got := SizePtr(nil); got != Empty {
		t.Errorf("expected %q for nil, got %q", Empty, got)
	}
	n := int64(2048)
	if got := SizePtr(&n); got != "2.0 KB" {
		t.Errorf("expected 2.0 KB, got %q", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date(nil); got != Empty {
		t.Errorf("expected %q for nil, got %q", Empty, got)
	}
	var zero time.Time
	if got := Date(&zero); got != Empty {
		t.Errorf("expected %q for zero time, got %q", Empty, got)
	}
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	if got := Date(&ts); got != "2024-03-15 09:30" {
		t.Errorf("unexpected rendering %q", got)
	}
}
