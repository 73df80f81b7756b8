package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/regenrek/taskpit/internal/limits"
)

var includePayloads atomic.Bool

func setIncludePayloads(v bool) {
	includePayloads.Store(v)
}

func IncludePayloads() bool {
	return includePayloads.Load()
}

// PayloadAttr logs pane input/output bytes. Unless payloads are enabled it
// only records the length and a short hash.
func PayloadAttr(key string, payload []byte) slog.Attr {
	if key == "" {
		key = "payload"
	}
	switch {
	case len(payload) == 0:
		return slog.String(key, `""`)
	case !IncludePayloads():
		return slog.String(key, redactedPayloadString(payload))
	}
	const preview = 256
	if len(payload) <= preview {
		return slog.String(key, fmt.Sprintf("%q", payload))
	}
	return slog.String(key, fmt.Sprintf("%q...(+%d bytes)", payload[:preview], len(payload)-preview))
}

func redactedPayloadString(payload []byte) string {
	prefix := payload
	if len(prefix) > limits.PayloadInspectLimit {
		prefix = prefix[:limits.PayloadInspectLimit]
	}
	sum := sha256.Sum256(prefix)
	return fmt.Sprintf("redacted(len=%d sha256_prefix=%s prefix_len=%d)", len(payload), hex.EncodeToString(sum[:6]), len(prefix))
}
