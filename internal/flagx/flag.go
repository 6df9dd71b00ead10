// Package flagx lets several loaders share os.Args without stepping on each
// other: each loader picks out only the flags it owns and parses those.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the given flag names.
//
// Both "-f value" and "-f=value" forms are recognised. A separate value is
// only taken when the next token does not itself start with "-". The result
// is never nil.
func FilterArgs(args []string, names []string) []string {
	owned := nameSet(names)
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, mine := owned[name]; mine {
				out = append(out, arg)
			}
			continue
		}

		if _, mine := owned[arg]; !mine {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// FilterSwitches returns the boolean flags among args that belong to names.
// Switches never take a separate value, so a following positional argument
// is left alone.
func FilterSwitches(args []string, names []string) []string {
	owned := nameSet(names)
	out := make([]string, 0, len(names))
	for _, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		if _, mine := owned[name]; mine && strings.HasPrefix(arg, "-") {
			out = append(out, arg)
		}
	}
	return out
}

// RemoveArgs is the complement of FilterArgs and FilterSwitches: it drops
// the flags in names (with their values) and the switches, and returns the
// rest in order.
func RemoveArgs(args []string, names []string, switches []string) []string {
	owned, sw := nameSet(names), nameSet(switches)
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			_, mine := owned[name]
			_, isSwitch := sw[name]
			if !mine && !isSwitch {
				out = append(out, arg)
			}
			continue
		}

		if _, isSwitch := sw[arg]; isSwitch {
			continue
		}
		if _, mine := owned[arg]; mine {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}

	return out
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// ConfigFile extracts the config file path given with -c or -config.
// It returns "" when neither flag is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
