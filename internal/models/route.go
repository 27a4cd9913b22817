// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Route is one entry of the application route table, shipped to the client
// so it can build URLs the same way the server does.
type Route struct {
	Name   string            `json:"name"`
	Path   string            `json:"path"`
	Verbs  []string          `json:"verbs"`
	Call   string            `json:"call"`
	Params map[string]string `json:"params,omitempty"`
}
