package cmd

import (
	"bytes"
	"context"
	"errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stubborn-gaga-0805/cibuild/conf"
	"github.com/stubborn-gaga-0805/cibuild/pkg/archive"
	"github.com/stubborn-gaga-0805/cibuild/pkg/cargo"
	"github.com/stubborn-gaga-0805/cibuild/pkg/repack"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls []cargo.Invocation
	err   error
}

func (f *fakeRunner) Run(_ context.Context, inv cargo.Invocation) error {
	f.calls = append(f.calls, inv)
	return f.err
}

func envLookup(value string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		return value, key == "APPVEYOR_REPO_TAG"
	}
}

func testBuildCmd(tag string, runner cargo.Runner) (*buildCmd, *bytes.Buffer) {
	out := new(bytes.Buffer)
	build := newBuildCmd()
	build.config = conf.Default()
	build.out = out
	build.runner = runner
	build.lookup = envLookup(tag)
	build.environ = func() []string { return []string{"CI=True"} }
	return build, out
}

func TestRootCommands(t *testing.T) {
	root := NewCommand()
	names := lo.Map(root.Commands(), func(c *cobra.Command, _ int) string { return c.Name() })
	for _, want := range []string{"build", "plan", "env", "bundle", "repackage"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestBuildRunNonTag(t *testing.T) {
	runner := new(fakeRunner)
	build, out := testBuildCmd("false", runner)

	require.NoError(t, build.run())
	require.Len(t, runner.calls, 2)
	assert.NotContains(t, runner.calls[0].Args, "--release")
	assert.Contains(t, runner.calls[1].Args, "--release")
	assert.Contains(t, out.String(), "CI=True")
	assert.Contains(t, out.String(), "Debug and release builds succeeded!")
}

func TestBuildRunTag(t *testing.T) {
	runner := new(fakeRunner)
	build, out := testBuildCmd("v1.2.3", runner)

	require.NoError(t, build.run())
	assert.Empty(t, runner.calls)
	assert.Contains(t, out.String(), "skipping the build step")
}

func TestBuildRunFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 101")}
	build, _ := testBuildCmd("false", runner)

	err := build.run()
	assert.EqualError(t, err, "Debug build failed")
	assert.Len(t, runner.calls, 1)
}

func TestPlanRun(t *testing.T) {
	plan := newPlanCmd()
	plan.config = conf.Default()
	out := new(bytes.Buffer)
	plan.out = out
	plan.lookup = envLookup("false")

	plan.run()
	assert.Contains(t, out.String(), "build")
	assert.Contains(t, out.String(), "1. cargo build --features prod --target x86_64-pc-windows-msvc")
	assert.Contains(t, out.String(), "2. cargo build --features prod --target x86_64-pc-windows-msvc --release")
}

func TestEnvRun(t *testing.T) {
	e := newEnvCmd()
	e.config = conf.Default()
	out := new(bytes.Buffer)
	e.out = out
	e.environ = func() []string { return []string{"NUGET_API_KEY=xyz", "HOME=/root"} }

	e.run()
	assert.Equal(t, "HOME=/root\nNUGET_API_KEY=***\n", out.String())
}

func cargoProject(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()
	content := "[package]\nname = \"dose-response\"\nversion = \"" + version + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(content), 0o644))
	return dir
}

func TestBundleOptions(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		envTag     string
		envCommit  string
		wantTriple string
		wantTag    string
		wantCommit string
	}{
		{"no args falls back to Cargo.toml", nil, "", "", "x86_64-pc-windows-msvc", "v0.5.0", ""},
		{"no args uses CI variables", nil, "v1.0.0", "abc123", "x86_64-pc-windows-msvc", "v1.0.0", "abc123"},
		{"triple argument", []string{"x86_64-unknown-linux-gnu"}, "v1.0.0", "abc123", "x86_64-unknown-linux-gnu", "v1.0.0", "abc123"},
		{"tag argument wins", []string{"x86_64-unknown-linux-gnu", "v2.0.0"}, "v1.0.0", "abc123", "x86_64-unknown-linux-gnu", "v2.0.0", "abc123"},
		{"commit argument wins", []string{"x86_64-apple-darwin", "v2.0.0", "def456"}, "v1.0.0", "abc123", "x86_64-apple-darwin", "v2.0.0", "def456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APPVEYOR_REPO_TAG_NAME", tt.envTag)
			t.Setenv("APPVEYOR_REPO_COMMIT", tt.envCommit)

			b := newBundleCmd()
			b.config = conf.Default()
			b.workingDir = cargoProject(t, "0.5.0")
			b.bundleFlags = &bundleFlags{flagGOOS: "linux", flagYes: true}

			opts, err := b.options(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTriple, opts.Triple)
			assert.Equal(t, tt.wantTag, opts.Tag)
			assert.Equal(t, tt.wantCommit, opts.Commit)
			assert.Equal(t, "linux", opts.GOOS)
			assert.True(t, opts.Overwrite)
			assert.Equal(t, b.workingDir, opts.WorkDir)
		})
	}
}

func TestRepackageRun(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Dose Response"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Dose Response", "dose-response"), []byte("bin"), 0o755))
	tarball := filepath.Join(t.TempDir(), "release.tar.gz")
	require.NoError(t, archive.Create(tarball, src, archive.TarGz))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.URL.Path, "apple") {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, tarball)
	}))
	defer srv.Close()

	workDir := cargoProject(t, "0.5.0")
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "lib", "x86_64-unknown-linux-gnu"), 0o755))

	r := newRepackageCmd()
	r.config = conf.Default()
	r.workingDir = workDir
	out := new(bytes.Buffer)
	r.out = out
	r.repacker = &repack.Repacker{Client: srv.Client(), Product: r.config.Product, BaseURL: srv.URL, WorkDir: workDir}

	require.NoError(t, r.run(nil))
	assert.Contains(t, out.String(), srv.URL+"/v0.5.0/dose-response-v0.5.0-x86_64-unknown-linux-gnu.tar.gz")
	assert.Contains(t, out.String(), "x86_64-apple-darwin skipped")
	assert.Equal(t, 2, strings.Count(out.String(), "Build created in"))
	assert.FileExists(t, filepath.Join(workDir, "target", "publish", "v0.5.0", "dose-response-v0.5.0-linux64.tar.gz"))
	assert.FileExists(t, filepath.Join(workDir, "target", "publish", "v0.5.0", "dose-response-v0.5.0-win64.zip"))

	out.Reset()
	require.NoError(t, r.run([]string{"v0.6.0"}))
	assert.Contains(t, out.String(), "/v0.6.0/dose-response-v0.6.0-x86_64-pc-windows-msvc.tar.gz")
}
