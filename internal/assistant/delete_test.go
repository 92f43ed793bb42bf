// ABOUTME: Tests for batch reference parsing in delete messages.
// ABOUTME: Explicit ids target that batch; undo/last/no-number mean most recent.
package assistant

import "testing"

func TestParseBatchRef(t *testing.T) {
	tests := []struct {
		message string
		want    *int64
	}{
		{"delete #12", int64Ptr(12)},
		{"delete 12", int64Ptr(12)},
		{"remove batch #3", int64Ptr(3)},
		{"undo", nil},
		{"undo that", nil},
		{"delete the last one", nil},
		{"delete my last workout", nil},
		{"delete that workout", nil},
		{"undo #5", nil},
	}

	for _, tt := range tests {
		got := parseBatchRef(tt.message)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("parseBatchRef(%q): got %v, want %v", tt.message, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("parseBatchRef(%q): got %d, want %d", tt.message, *got, *tt.want)
		}
	}
}

func int64Ptr(v int64) *int64 { return &v }
