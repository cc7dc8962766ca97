// Package migrations содержит схему для локальной базы разработки.
// В Supabase эти таблицы уже существуют.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
