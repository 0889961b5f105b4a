package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolateConfig points config discovery at an empty directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TIMEPICKER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func mustEnvelope(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: timepicker %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func TestNormalize_JSONEnvelope(t *testing.T) {
	isolateConfig(t)

	env := mustEnvelope(t, "normalize", "7:5", "23:", "", "12")
	got, _ := env["data"].([]any)
	want := []any{
		map[string]any{"input": "7:5", "value": "07:05"},
		map[string]any{"input": "23:", "value": "23:00"},
		map[string]any{"input": "", "value": "00:00"},
		map[string]any{"input": "12", "value": "12:00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize data (-want +got):\n%s", diff)
	}
}

func TestNormalize_Raw(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, []string{"normalize", "--raw", "9:3", "ab:7"})
	if err != nil {
		t.Fatalf("normalize --raw: %v", err)
	}
	if got := string(stdout); got != "09:03\n00:07\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestNormalize_EDN(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, []string{"--format", "edn", "normalize", "1:2"})
	if err != nil {
		t.Fatalf("normalize --format edn: %v", err)
	}
	want := `{:data [{:input "1:2" :value "01:02"}]}` + "\n"
	if got := string(stdout); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestNormalize_RequiresArgs(t *testing.T) {
	isolateConfig(t)

	if _, _, err := runCLI(t, []string{"normalize"}); err == nil {
		t.Fatalf("expected an error without values")
	}
}

func TestDocs(t *testing.T) {
	isolateConfig(t)

	env := mustEnvelope(t, "docs")
	topics, _ := env["data"].(map[string]any)["topics"].([]any)
	if diff := cmp.Diff([]any{"keys", "modes", "usage"}, topics); diff != "" {
		t.Fatalf("topics (-want +got):\n%s", diff)
	}

	stdout, _, err := runCLI(t, []string{"docs", "KEYS"})
	if err != nil {
		t.Fatalf("docs KEYS: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("non-terminal output should be raw markdown; got:\n%s", stdout)
	}

	_, stderr, err := runCLI(t, []string{"docs", "nope"})
	if err == nil {
		t.Fatalf("expected unknown topic to fail")
	}
	if !strings.Contains(string(stderr), `unknown docs topic: "nope"`) {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	env := mustEnvelope(t, "config")
	data, _ := env["data"].(map[string]any)
	picker, _ := data["picker"].(map[string]any)
	want := map[string]any{
		"defaultValue": "00:00",
		"placeholder":  "HH:MM",
		"width":        float64(24),
		"panelRows":    float64(6),
	}
	if diff := cmp.Diff(want, picker); diff != "" {
		t.Fatalf("picker config (-want +got):\n%s", diff)
	}
	path, _ := env["meta"].(map[string]any)["path"].(string)
	if !strings.HasSuffix(path, filepath.Join("timepicker", "config.toml")) {
		t.Fatalf("meta.path = %q", path)
	}
}

func TestConfig_FileEnvAndFlagPrecedence(t *testing.T) {
	dir := isolateConfig(t)

	path := filepath.Join(dir, "custom.toml")
	toml := `
[picker]
placeholder = "hh:mm"
width = 30

[ui]
mouse = false

[output]
format = "edn"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TIMEPICKER_PICKER_PANEL_ROWS", "9")

	env := mustEnvelope(t, "--config", path, "--format", "json", "config")
	data, _ := env["data"].(map[string]any)
	picker, _ := data["picker"].(map[string]any)
	if picker["placeholder"] != "hh:mm" || picker["width"] != float64(30) || picker["panelRows"] != float64(9) {
		t.Fatalf("picker config = %v", picker)
	}
	if ui, _ := data["ui"].(map[string]any); ui["mouse"] != false {
		t.Fatalf("ui config = %v", ui)
	}
	if out, _ := data["output"].(map[string]any); out["format"] != "json" {
		t.Fatalf("--format should override the file; output = %v", out)
	}
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	dir := isolateConfig(t)

	_, _, err := runCLI(t, []string{"--config", filepath.Join(dir, "missing.toml"), "config"})
	if err == nil {
		t.Fatalf("expected a missing --config file to fail")
	}
}

func TestLogLevel_Invalid(t *testing.T) {
	dir := isolateConfig(t)

	_, stderr, err := runCLI(t, []string{"--log-file", filepath.Join(dir, "tp.log"), "--log-level", "loud", "normalize", "1:1"})
	if err == nil {
		t.Fatalf("expected an unknown log level to fail")
	}
	if !strings.Contains(string(stderr), "unknown log level") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestLogFile_ReceivesEntries(t *testing.T) {
	dir := isolateConfig(t)
	logPath := filepath.Join(dir, "tp.log")

	if _, _, err := runCLI(t, []string{"--log-file", logPath, "--log-level", "debug", "normalize", "1:1"}); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"config loaded"`) {
		t.Fatalf("log file missing entry:\n%s", b)
	}
}

func TestPick_RejectsBadValuesBeforeRunning(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "value", args: []string{"pick", "--value", "25:00"}, want: "--value"},
		{name: "default", args: []string{"pick", "--default", "7:5"}, want: "--default"},
		{name: "both", args: []string{"pick", "--value", "09:30", "--default", "10:00"}, want: "none of the others"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, tt.args)
			if err == nil {
				t.Fatalf("expected %v to fail", tt.args)
			}
			if !strings.Contains(string(stderr)+err.Error(), tt.want) {
				t.Fatalf("error %q / stderr %q does not mention %q", err, stderr, tt.want)
			}
		})
	}
}
