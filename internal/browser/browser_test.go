package browser

import "testing"

func TestOpenRejectsNonHTTP(t *testing.T) {
	tests := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"ftp://example.com",
		"",
	}
	for _, u := range tests {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q): expected error, got nil", u)
		}
	}
}

func TestOpenCommandPerPlatform(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open"},
		{"windows", "rundll32"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		cmd := openCommand(tt.goos, "https://example.com")
		if len(cmd.Args) == 0 || cmd.Args[0] != tt.want {
			t.Errorf("openCommand(%q) launcher = %v, want %q", tt.goos, cmd.Args, tt.want)
		}
	}
}
