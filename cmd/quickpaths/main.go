package main

import (
	"os"
	"strings"
)

func main() {
	os.Exit(execute(normalizeArgs(os.Args[1:])))
}

// normalizeArgs accepts the Windows-style "/install" and "/uninstall" switches
// used by the installer shortcuts.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch strings.ToLower(a) {
		case "/install":
			out[i] = "--install"
		case "/uninstall":
			out[i] = "--uninstall"
		default:
			out[i] = a
		}
	}
	return out
}
