// Package static holds the embedded web UI.
package static

import "embed"

//go:embed index.html
var Files embed.FS
