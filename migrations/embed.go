// Package migrations embebe los archivos SQL de goose en el binario para que
// el despliegue no dependa de un directorio externo.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
