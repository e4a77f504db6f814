// Package schemas встраивает JSON-схемы запросов и событий в бинарник.
package schemas

import "embed"

//go:embed events requests
var SchemasFS embed.FS
