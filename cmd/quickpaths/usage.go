package main

const rootUsageTemplate = `Usage:
  {{.UseLine}}

Runs the floating favorites dot. With --install or --uninstall it registers or
removes automatic start at login instead.
{{if .HasAvailableLocalFlags}}
Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}`
