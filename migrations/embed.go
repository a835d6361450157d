// Package migrations содержит SQL миграции схемы регионов в формате goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
