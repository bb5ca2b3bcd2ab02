package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-abstracts/internal/hints"
)

// Doctor report statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport holds the checks behind --doctor.
type doctorReport struct {
	Status   string       `json:"status"`
	Chrome   chromeReport `json:"chrome"`
	Env      envReport    `json:"environment"`
	System   systemReport `json:"system"`
	Styles   []string     `json:"styles"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type chromeReport struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envReport struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

type systemReport struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctor checks what PDF output needs and prints the report.
// Only PDF needs Chrome, so a missing browser is a warning: Markdown and
// HTML output still work.
func runDoctor(env *Environment, asJSON bool) int {
	r := &doctorReport{
		Status: statusReady,
		Env: envReport{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}
	if env.AssetLoader != nil {
		r.Styles = env.AssetLoader.ListStyles()
	}

	checkChrome(r, env.LookChrome)
	checkEnvironment(r)
	checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	}

	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		printDoctorReport(env.Stdout, r)
	}

	if r.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func checkChrome(r *doctorReport, look func() (string, bool)) {
	path := r.Env.BrowserBin
	if path == "" && look != nil {
		path, _ = look()
	}
	if path == "" {
		r.Warnings = append(r.Warnings, "Chrome/Chromium not found: PDF output will download Chromium on first use, or set ROD_BROWSER_BIN")
		return
	}
	if _, err := os.Stat(path); err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	r.Chrome.Found = true
	r.Chrome.Path = path
	r.Chrome.Sandbox = r.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("could not get Chrome version: %v", err))
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

func checkEnvironment(r *doctorReport) {
	r.Env.Container = hints.IsInContainer() ||
		os.Getenv("container") != "" ||
		os.Getenv("KUBERNETES_SERVICE_HOST") != ""

	r.Env.CI = hints.InCI()

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.Warnings = append(r.Warnings, "container or CI detected but ROD_NO_SANDBOX is not set; set ROD_NO_SANDBOX=1")
	}
}

// checkTempDir verifies the PDF printer can stage its HTML file.
func checkTempDir(r *doctorReport) {
	dir := os.TempDir()
	probe := filepath.Join(dir, fmt.Sprintf("abstracts-doctor-%d", os.Getpid()))
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("temp directory not writable: %s", dir))
		return
	}
	_ = os.Remove(probe)
	r.System.TempWritable = true
}

func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "abstracts doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF output)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(r.Styles, ", "))
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
