// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deploy

import (
	"net/url"
	"strings"
)

// GroupConfig tells the loader how to address the modules of a group,
// either one request per module (Base + Root + name) or through a combo
// service (ComboBase + Root + name + ComboSep + Root + name ...).
type GroupConfig struct {
	Base      string `json:"base"`
	Root      string `json:"root"`
	ComboBase string `json:"comboBase"`
	ComboSep  string `json:"comboSep"`
	Combine   bool   `json:"combine"`
}

// SeedAssets turns the ordered seed list into the ordered list of URLs the
// page must load before anything else. Entries that carry a URL scheme are
// passed through verbatim. Plain module names are either addressed one by
// one (Combine == false) or folded into a single combo URL per run of
// consecutive names. The relative order of the seed list is preserved.
func SeedAssets(seeds []string, group GroupConfig) []string {
	assets := make([]string, 0, len(seeds))
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		assets = append(assets, group.ComboBase+group.Root+
			strings.Join(pending, group.ComboSep+group.Root))
		pending = nil
	}

	for _, seed := range seeds {
		switch {
		case hasScheme(seed):
			flush()
			assets = append(assets, seed)
		case !group.Combine:
			flush()
			assets = append(assets, group.Base+group.Root+seed)
		default:
			pending = append(pending, seed)
		}
	}
	flush()

	return assets
}

// hasScheme reports whether entry starts with a URL scheme, ignoring
// surrounding whitespace. Nothing else about the URL is validated:
// "//cdn/x.js" and "lib/x.js" are module names.
func hasScheme(entry string) bool {
	entry = strings.TrimSpace(entry)
	u, err := url.Parse(entry)
	if err == nil {
		return u.Scheme != ""
	}
	// url.Parse also rejects bad escapes further down the string; the
	// scheme alone decides here, so retry with just the prefix.
	i := strings.IndexByte(entry, ':')
	if i <= 0 {
		return false
	}
	u, err = url.Parse(entry[:i+1])
	return err == nil && u.Scheme != ""
}
