package config

import (
	"os"
	"regexp"
	"strings"
)

// envRef matches ${NAME}, ${NAME:-fallback} and $NAME. Bare names must start
// with a letter or underscore, so "$5" and "$123VAR" stay literal.
var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv substitutes environment references in s. Unset variables
// expand to the fallback after ":-" if one is given, otherwise to "".
// A set but empty variable also takes the fallback.
func ExpandEnv(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if m[2] != "" {
			return os.Getenv(m[2])
		}
		name, fallback, hasFallback := strings.Cut(m[1], ":-")
		if v := os.Getenv(name); v != "" || !hasFallback {
			return v
		}
		return fallback
	})
}

// ExpandEnvConfig expands every string a user can write in a configuration:
// window title, background and hints, animation direction and type, grid
// color, and each frame and palette entry.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	for _, s := range []*string{
		&cfg.Window.Title,
		&cfg.Window.Background,
		&cfg.Animation.Direction,
		&cfg.Animation.Type,
		&cfg.Grid.Color,
	} {
		*s = ExpandEnv(*s)
	}
	expandAll(cfg.Window.Hints)

	for i := range cfg.Frames {
		f := &cfg.Frames[i]
		f.Direction = ExpandEnv(f.Direction)
		f.Type = ExpandEnv(f.Type)
		expandAll(f.Colors)
	}
	for _, row := range cfg.Palette {
		expandAll(row)
	}
}

func expandAll(values []string) {
	for i, v := range values {
		values[i] = ExpandEnv(v)
	}
}
