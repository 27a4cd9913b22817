// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"clientboot/internal/deploy"
)

const runtimeContextKey contextKey = "runtime_context"

// RuntimeContext resolves the execution context of the request and stores
// it in the request context. The lang comes from the "lang" query parameter
// or else the Accept-Language header, matched against the supported
// languages; the first supported language is the fallback. The runtime is
// always "server" here: the client context is derived from it later.
func RuntimeContext(supported []string, environment string) func(http.Handler) http.Handler {
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := deploy.Context{
				"lang":        matchLang(matcher, supported, r),
				"runtime":     "server",
				"environment": environment,
			}
			ctx := context.WithValue(r.Context(), runtimeContextKey, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RuntimeContextFromCtx returns the execution context stored by
// RuntimeContext, or nil when the middleware did not run.
func RuntimeContextFromCtx(ctx context.Context) deploy.Context {
	c, _ := ctx.Value(runtimeContextKey).(deploy.Context)
	return c
}

// WithRuntimeContext returns a copy of ctx carrying c.
func WithRuntimeContext(ctx context.Context, c deploy.Context) context.Context {
	return context.WithValue(ctx, runtimeContextKey, c)
}

// matchLang returns the supported language that best serves the request,
// spelled exactly as it appears in the supported list.
func matchLang(matcher language.Matcher, supported []string, r *http.Request) string {
	if len(supported) == 0 {
		return ""
	}

	var wanted []language.Tag
	if q := r.URL.Query().Get("lang"); q != "" {
		if tag, err := language.Parse(q); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			wanted = append(wanted, tags...)
		}
	}
	if len(wanted) == 0 {
		return supported[0]
	}

	_, index, confidence := matcher.Match(wanted...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return supported[0]
	}
	return supported[index]
}
