// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

// deepMerge returns dst with src merged on top. Nested maps are merged key
// by key; every other value, arrays included, replaces what was there.
// Neither argument is modified.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		srcMap, srcOK := v.(map[string]any)
		dstMap, dstOK := out[k].(map[string]any)
		if srcOK && dstOK {
			out[k] = deepMerge(dstMap, srcMap)
			continue
		}
		if srcOK {
			out[k] = deepMerge(nil, srcMap)
			continue
		}
		out[k] = v
	}
	return out
}
