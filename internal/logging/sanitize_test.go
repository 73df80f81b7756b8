package logging

import (
	"strings"
	"testing"
)

func TestSanitizeCommandRedactsSensitiveTokens(t *testing.T) {
	input := `ANTHROPIC_API_KEY=abc123 claude --api-key ghi789 -H "Authorization: Bearer xyz999"`
	out := SanitizeCommand(input)
	for _, secret := range []string{"abc123", "ghi789", "xyz999"} {
		if strings.Contains(out, secret) {
			t.Fatalf("expected %q redacted, got %q", secret, out)
		}
	}
	if !strings.Contains(out, "claude") {
		t.Fatalf("expected command name kept, got %q", out)
	}
}

func TestSanitizeCommandEmpty(t *testing.T) {
	if got := SanitizeCommand("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
