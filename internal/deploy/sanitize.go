// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deploy

import "strings"

// scriptEscaper rewrites characters that could close the surrounding
// <script> element or start markup into their \uXXXX spelling.
var scriptEscaper = strings.NewReplacer(
	"<", `\u003C`,
	">", `\u003E`,
	"&", `\u0026`,
	"'", `\u0027`,
	`"`, `\u0022`,
)

// Cleanse returns a deep copy of v in which every string, including map
// keys, has been passed through the script escaper. v is expected to be
// the generic shape produced by encoding/json (map[string]any, []any,
// string, float64, bool, nil); typed maps and slices used by this package
// are handled as well. Other values are returned as is.
func Cleanse(v any) any {
	switch t := v.(type) {
	case string:
		return scriptEscaper.Replace(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[scriptEscaper.Replace(k)] = Cleanse(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Cleanse(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = scriptEscaper.Replace(s)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, s := range t {
			out[scriptEscaper.Replace(k)] = scriptEscaper.Replace(s)
		}
		return out
	default:
		return v
	}
}

// Sanitize cleanses both configuration blobs. The combo separators of the
// loader config are put back untouched afterwards: a separator such as "&"
// is part of the URLs the loader builds and must reach the client as is.
func Sanitize(loader, client map[string]any) (map[string]any, map[string]any) {
	loaderEscaped, _ := Cleanse(loader).(map[string]any)
	clientEscaped, _ := Cleanse(client).(map[string]any)

	if sep, ok := loader["comboSep"]; ok && sep != nil && sep != "" {
		loaderEscaped["comboSep"] = sep
	}
	if sep, ok := appGroupValue(loader, "comboSep"); ok {
		if app, ok := appGroupMap(loaderEscaped); ok {
			app["comboSep"] = sep
		}
	}

	return loaderEscaped, clientEscaped
}

// appGroupMap returns loader["groups"]["app"] when it is a generic map.
func appGroupMap(loader map[string]any) (map[string]any, bool) {
	groups, ok := loader["groups"].(map[string]any)
	if !ok {
		return nil, false
	}
	app, ok := groups["app"].(map[string]any)
	return app, ok
}

func appGroupValue(loader map[string]any, key string) (any, bool) {
	app, ok := appGroupMap(loader)
	if !ok {
		return nil, false
	}
	v, ok := app[key]
	if !ok || v == nil || v == "" {
		return nil, false
	}
	return v, true
}
