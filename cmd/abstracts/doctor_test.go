package main

// Notes:
// - Tests that read environment variables use t.Setenv and cannot run in
//   parallel. The Chrome lookup is injected through Environment.LookChrome.
// - The running test binary stands in for a browser executable: it exists,
//   and "--version" makes it exit with an error, so a warning is expected.

import (
	"bytes"
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-abstracts/internal/assets"
	"github.com/alnah/go-abstracts/internal/hints"
)

func doctorEnv(look func() (string, bool)) (*Environment, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Environment{
		Stdout:      &stdout,
		Stderr:      &bytes.Buffer{},
		AssetLoader: assets.NewEmbeddedLoader(),
		LookChrome:  look,
	}, &stdout
}

func noContainer(t *testing.T) {
	t.Helper()
	orig := hints.IsInContainer
	t.Cleanup(func() { hints.IsInContainer = orig })
	hints.IsInContainer = func() bool { return false }

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI",
		"container", "KUBERNETES_SERVICE_HOST", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"} {
		t.Setenv(v, "")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor
// ---------------------------------------------------------------------------

func TestRunDoctor_JSON(t *testing.T) {
	noContainer(t)

	env, stdout := doctorEnv(func() (string, bool) { return "", false })
	code := runDoctor(env, true)

	var r doctorReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r), "output: %s", stdout.String())

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, statusWarnings, r.Status)
	assert.False(t, r.Chrome.Found)
	assert.Equal(t, runtime.GOOS, r.Env.OS)
	assert.Equal(t, runtime.GOARCH, r.Env.Arch)
	assert.True(t, r.System.TempWritable)
	assert.Equal(t, []string{"compact", "default"}, r.Styles)
	assert.Contains(t, strings.Join(r.Warnings, "\n"), "ROD_BROWSER_BIN")
}

func TestRunDoctor_ChromeFound(t *testing.T) {
	noContainer(t)

	exe, err := os.Executable()
	require.NoError(t, err)

	env, stdout := doctorEnv(func() (string, bool) { return exe, true })
	runDoctor(env, true)

	var r doctorReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.True(t, r.Chrome.Found)
	assert.Equal(t, exe, r.Chrome.Path)
	assert.True(t, r.Chrome.Sandbox)
}

func TestRunDoctor_BrowserBinWins(t *testing.T) {
	noContainer(t)
	t.Setenv("ROD_BROWSER_BIN", "/nonexistent/chrome")

	called := false
	env, stdout := doctorEnv(func() (string, bool) { called = true; return "", false })
	runDoctor(env, true)

	var r doctorReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.False(t, called, "lookup must not run when ROD_BROWSER_BIN is set")
	assert.False(t, r.Chrome.Found)
	assert.Contains(t, strings.Join(r.Warnings, "\n"), "/nonexistent/chrome")
}

func TestRunDoctor_ContainerWithoutNoSandbox(t *testing.T) {
	noContainer(t)
	hints.IsInContainer = func() bool { return true }

	env, stdout := doctorEnv(nil)
	runDoctor(env, true)

	var r doctorReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &r))
	assert.True(t, r.Env.Container)
	assert.Contains(t, strings.Join(r.Warnings, "\n"), "ROD_NO_SANDBOX=1")
}

func TestRunDoctor_HumanOutput(t *testing.T) {
	noContainer(t)

	env, stdout := doctorEnv(func() (string, bool) { return "", false })
	code := runDoctor(env, false)

	out := stdout.String()
	assert.Equal(t, ExitSuccess, code)
	for _, want := range []string{"abstracts doctor", "Chrome/Chromium", "[WARN] Not found", "Platform:", "Styles: compact, default", "Status: Ready with warnings"} {
		assert.Contains(t, out, want)
	}
}

func TestRunMain_Doctor(t *testing.T) {
	noContainer(t)

	env, stdout := doctorEnv(func() (string, bool) { return "", false })
	code := runMain(t.Context(), []string{"--doctor", "--json"}, env)

	assert.Equal(t, ExitSuccess, code)
	assert.True(t, json.Valid(stdout.Bytes()))
}
