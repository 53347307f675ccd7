// Package restock embeds the goose migrations for the restock bounded context.
package restock

import "embed"

//go:embed *.sql
var FS embed.FS
