package main

import (
	"os"
	"strings"

	"tagboard/internal/cli"
)

func isActionJSON(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "{")
}

func rewriteDirectActionArgs(argv []string) []string {
	// Convenience: `tagboard '{"type":"NewCard"}'` works like `tagboard do '{"type":"NewCard"}'`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first, so look for the first positional token.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--board":  true,
		"--config": true,
		"--format": true,
	}

	insertDo := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "do")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isActionJSON(argv[i+1]) {
				return insertDo(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isActionJSON(a) {
			return insertDo(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectActionArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
