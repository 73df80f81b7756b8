package version

import (
	"bytes"
	"testing"

	"github.com/regenrek/taskpit/internal/cli/root"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	err := runVersion(root.CommandContext{Out: &out, Deps: root.Dependencies{Version: "1.2.3"}})
	if err != nil {
		t.Fatalf("runVersion: %v", err)
	}
	if out.String() != "taskpit 1.2.3\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
