package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "0123456789abcdef0123"
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit 0123456789ab,") {
		t.Errorf("Template() = %q, want shortened commit", got)
	}
}
