package cargo

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"os/exec"
	"testing"
)

func TestPlan(t *testing.T) {
	c := conf.Cargo{
		Command:  "cargo",
		Features: []string{"prod", "fullscreen"},
		Target:   "x86_64-pc-windows-msvc",
		WorkDir:  "/src",
	}

	debug := Plan(c, Debug)
	assert.Equal(t, "cargo", debug.Name)
	assert.Equal(t, "/src", debug.Dir)
	assert.Equal(t, []string{"build", "--features", "prod fullscreen", "--target", "x86_64-pc-windows-msvc"}, debug.Args)
	assert.NotContains(t, debug.Args, "--release")

	release := Plan(c, Release)
	assert.Equal(t, append(debug.Args, "--release"), release.Args)
}

func TestPlanOmitsEmptyFeaturesAndTarget(t *testing.T) {
	inv := Plan(conf.Cargo{Command: "cargo", ExtraArgs: []string{"--locked"}}, Release)
	assert.Equal(t, []string{"build", "--release", "--locked"}, inv.Args)
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Name: "cargo", Args: []string{"build", "--features", "a b", "--release"}}
	assert.Equal(t, `cargo build --features "a b" --release`, inv.String())
}

func TestBuildErrorMessage(t *testing.T) {
	cause := &ExitError{Code: 101}
	err := error(&BuildError{Profile: Debug, Err: cause})
	assert.Equal(t, "Debug build failed", err.Error())
	assert.Equal(t, "Release build failed", (&BuildError{Profile: Release}).Error())

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 101, exitErr.Code)
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := &ExecRunner{}

	require.NoError(t, r.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "exit 0"}}))

	err := r.Run(context.Background(), Invocation{Name: "sh", Args: []string{"-c", "exit 3"}})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)

	err = r.Run(context.Background(), Invocation{Name: "definitely-not-a-build-tool"})
	require.Error(t, err)
	assert.False(t, errors.As(err, &exitErr))
}
