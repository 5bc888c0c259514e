package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "flytrap/") {
		t.Errorf("unexpected user agent: %s", ua)
	}
	if strings.TrimPrefix(ua, "flytrap/") == "" {
		t.Error("user agent missing a version")
	}
}
