package placeholder

import "testing"

func TestProtectRestore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int // number of markers
	}{
		{"brace variable", "Welcome back, {user_name}!", 1},
		{"numbered brace", "Page {0} of {1}", 2},
		{"dotted path", "Sent to {user.email}", 1},
		{"printf verb", "Found %d items (%s)", 2},
		{"html tag", "Click <a href=\"/here\">here</a> now", 2},
		{"mixed", "<b>{count}</b> results for %s", 4},
		{"none", "Plain text only", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protected, markers := Protect(tt.text)
			if len(markers) != tt.want {
				t.Fatalf("Protect(%q) captured %d markers, want %d", tt.text, len(markers), tt.want)
			}
			if got := Restore(protected, markers); got != tt.text {
				t.Errorf("round-trip: got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestRestore_UnknownIndex(t *testing.T) {
	got := Restore("text [PH9] more", []string{"{a}"})
	if got != "text [PH9] more" {
		t.Errorf("unknown marker should stay put, got %q", got)
	}
}

func TestMissing(t *testing.T) {
	protected, markers := Protect("{a} and {b}")
	if protected != "[PH0] and [PH1]" {
		t.Fatalf("unexpected protected text %q", protected)
	}
	if m := Missing("[PH0] only", markers); len(m) != 1 || m[0] != 1 {
		t.Errorf("expected marker 1 missing, got %v", m)
	}
	if m := Missing(protected, markers); m != nil {
		t.Errorf("expected nothing missing, got %v", m)
	}
}
