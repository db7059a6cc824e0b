package host

import "strings"

const (
	// FriendlyFlag is the short flag users pass to request a tunnel at startup.
	FriendlyFlag = "tunnel"
	// AutostartFlag is the flag name the application parses.
	AutostartFlag = "pinggy-tunnel"
)

// TranslateArgs rewrites --tunnel into --pinggy-tunnel so the application's
// own flag parser accepts it. Arguments after "--" are left alone.
func TranslateArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		switch {
		case arg == "--"+FriendlyFlag:
			arg = "--" + AutostartFlag
		case strings.HasPrefix(arg, "--"+FriendlyFlag+"="):
			arg = "--" + AutostartFlag + strings.TrimPrefix(arg, "--"+FriendlyFlag)
		}
		out = append(out, arg)
	}
	return out
}
