package memory

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exitChildEnv = "MEMORY_TEST_EXIT_CHILD"

func TestOffsetOrExit_PrintsError(t *testing.T) {
	if os.Getenv(exitChildEnv) == "1" {
		NewOffsetTable("arm64").OffsetOrExit("java.lang.Class.dexCache")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestOffsetOrExit_PrintsError$")
	cmd.Env = append(os.Environ(), exitChildEnv+"=1")

	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "not in the lookup table")
}
