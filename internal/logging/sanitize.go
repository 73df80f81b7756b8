package logging

import (
	"regexp"
	"strings"
)

type redaction struct {
	pattern *regexp.Regexp
	repl    string
}

// Agent launch commands regularly carry API keys in flags or env prefixes.
var commandRedactions = []redaction{
	{regexp.MustCompile(`(?i)(--(?:token|access-token|api-key|apikey|secret|password|authorization|auth|cookie|client-secret|bearer))(=|\s+)(\S+)`), "$1$2<redacted>"},
	{regexp.MustCompile(`(?i)\b([A-Z0-9_]*?(?:TOKEN|SECRET|PASSWORD|API_KEY|APIKEY|AUTH|BEARER|COOKIE)[A-Z0-9_]*)=([^\s]+)`), "$1=<redacted>"},
	{regexp.MustCompile(`(?i)\bAuthorization:\s*Bearer\s+[^\s"']+`), "Authorization: Bearer <redacted>"},
	{regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`), "Bearer <redacted>"},
}

// SanitizeCommand redacts common secrets from a command line before logging.
func SanitizeCommand(value string) string {
	out := strings.TrimSpace(value)
	if out == "" {
		return ""
	}
	for _, r := range commandRedactions {
		out = r.pattern.ReplaceAllString(out, r.repl)
	}
	return out
}
