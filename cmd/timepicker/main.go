package main

import (
	"os"
	"strings"

	"timepicker-cli/internal/cli"
)

func isTimeArg(s string) bool {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || h == "" || len(h) > 2 || len(m) > 2 {
		return false
	}
	for _, r := range h + m {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// rewriteDirectPickArgs turns `timepicker 14:45` into
// `timepicker pick --default 14:45`.
//
// Cobra treats the first positional token as a subcommand, so argv is
// rewritten before parsing. Persistent flags may come first, so the first
// positional token is searched for rather than argv[1].
func rewriteDirectPickArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":    true,
		"--format":    true,
		"--log-file":  true,
		"--log-level": true,
	}

	// rewrite inserts the pick command at i, dropping argv[i:rest].
	rewrite := func(i, rest int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "pick", "--default")
		out = append(out, argv[rest:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isTimeArg(argv[i+1]) {
				// pick takes no positionals, so the "--" goes.
				return rewrite(i, i+1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isTimeArg(a):
			return rewrite(i, i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteDirectPickArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
