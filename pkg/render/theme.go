package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeContext flattens a go-theme renderer configuration into the map shape
// templates consume under the "theme" key.
func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return nil
	}
	out := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  copyStringMap(cfg.Tokens),
		"cssVars": copyStringMap(cfg.CSSVars),
	}
	out["cssVarsStyle"] = cssVarsStyle(cfg.CSSVars)
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
