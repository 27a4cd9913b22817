// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deploy

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// BootstrapModule is always requested by the client bootstrap script.
const BootstrapModule = "mojito-client"

// Context is the execution context a request is served under
// (lang, runtime, device, environment, ...).
type Context map[string]string

// Client returns a copy of the context with the runtime set to "client".
func (c Context) Client() Context {
	out := make(Context, len(c)+1)
	maps.Copy(out, c)
	out["runtime"] = "client"
	return out
}

// Binder describes the client-side controller bound to one view.
type Binder struct {
	Name   string         `json:"name"`
	Type   string         `json:"type,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// BinderMap maps view ids to the binder deployed for that view.
type BinderMap map[string]Binder

// LoaderDefaults holds the loader settings an application starts from
// before its own yui.config overrides are applied.
type LoaderDefaults struct {
	FetchCSS  bool
	Combine   bool
	Base      string
	ComboBase string
	Root      string
}

// Input is everything the assembler needs for one bootstrap payload.
type Input struct {
	Defaults      LoaderDefaults
	AppConfig     map[string]any // client-side application config
	AppGroup      GroupConfig
	ServerContext Context
	ClientContext Context
	Binders       BinderMap
	Routes        any
	PathToRoot    string
}

// Assemble builds the loader configuration and the client runtime
// configuration. The loader config starts from the defaults, is overridden
// by the application's yui.config, and always carries the lang the server
// resolved. The yui.config section is dropped from the client copy of the
// application config since it reaches the client through the loader.
//
// Both results are made of generic JSON values so they can be cleansed.
func Assemble(in Input) (loader, client map[string]any, err error) {
	appConfig, err := toGenericMap(in.AppConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize app config: %w", err)
	}
	group, err := toGenericMap(in.AppGroup)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize app group: %w", err)
	}

	loader = map[string]any{
		"fetchCSS":  in.Defaults.FetchCSS,
		"combine":   in.Defaults.Combine,
		"base":      in.Defaults.Base,
		"comboBase": in.Defaults.ComboBase,
		"root":      in.Defaults.Root,
		"groups":    map[string]any{"app": group},
	}

	if yui, ok := appConfig["yui"].(map[string]any); ok {
		if overrides, ok := yui["config"].(map[string]any); ok {
			maps.Copy(loader, overrides)
		}
		delete(yui, "config")
	}
	loader["lang"] = in.ServerContext["lang"]

	client = map[string]any{
		"appConfig": appConfig,
	}
	for key, v := range map[string]any{
		"context":   in.ClientContext,
		"binderMap": in.Binders,
		"routes":    in.Routes,
	} {
		generic, err := toGeneric(v)
		if err != nil {
			return nil, nil, fmt.Errorf("normalize %s: %w", key, err)
		}
		client[key] = generic
	}
	if in.PathToRoot != "" {
		client["pathToRoot"] = in.PathToRoot
	}

	return loader, client, nil
}

// InitialModules lists the modules the bootstrap script asks the loader
// for: the bootstrap module followed by every distinct binder name.
func InitialModules(binders BinderMap) []string {
	seen := map[string]bool{BootstrapModule: true}
	var names []string
	for _, b := range binders {
		if b.Name == "" || seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		names = append(names, b.Name)
	}
	slices.Sort(names)
	return append([]string{BootstrapModule}, names...)
}

// toGeneric round-trips v through encoding/json so that structs, typed maps
// and slices all become map[string]any / []any trees.
func toGeneric(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toGenericMap(v any) (map[string]any, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	m, _ := generic.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
