// Package migrations embeds the Spanner DDL so the binaries and tests do not
// depend on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
