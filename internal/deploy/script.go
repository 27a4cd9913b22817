// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deploy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// moduleEscaper makes a module name safe inside a single-quoted JS string
// in an inline script: quotes, markup characters, backslashes and line
// terminators are written as escapes.
var moduleEscaper = strings.NewReplacer(
	`\`, `\\`,
	"'", `\u0027`,
	`"`, `\u0022`,
	"<", `\u003C`,
	">", `\u003E`,
	"&", `\u0026`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// BootstrapScript renders the <script> element that configures the loader,
// loads the initial modules and starts the client runtime.
func BootstrapScript(loader, client map[string]any, modules []string) (string, error) {
	loaderJSON, err := json.Marshal(loader)
	if err != nil {
		return "", fmt.Errorf("marshal loader config: %w", err)
	}
	clientJSON, err := json.Marshal(client)
	if err != nil {
		return "", fmt.Errorf("marshal client config: %w", err)
	}

	var b strings.Builder
	b.WriteString("<script type=\"text/javascript\">\n")
	b.WriteString("    YUI.applyConfig(")
	b.Write(loaderJSON)
	b.WriteString(");\n")
	b.WriteString("    YUI().use(")
	for _, m := range modules {
		b.WriteString("'")
		b.WriteString(moduleEscaper.Replace(m))
		b.WriteString("',")
	}
	b.WriteString(" function(Y) {\n")
	b.WriteString("    window.YMojito = { client: new Y.mojito.Client(")
	b.Write(clientJSON)
	b.WriteString(") };\n")
	b.WriteString("        });\n")
	b.WriteString("</script>\n")
	return b.String(), nil
}
