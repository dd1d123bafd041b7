// Package webui exposes the embedded static assets.
// It lives at the module root so go:embed can reach the sibling "static/"
// directory; internal/server/embed.go serves it under /static.
package webui

import "embed"

// FS holds the static tree (stylesheet and images).
//
//go:embed static
var FS embed.FS
