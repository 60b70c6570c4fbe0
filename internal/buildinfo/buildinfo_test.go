package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "modreg "+Version) {
		t.Fatalf("unexpected build string %q", got)
	}
}
