// Package assets embeds the bundled sample of the per-capita meat supply dataset.
package assets

import _ "embed"

// PerCapitaCSV is an excerpt of the FAO per-capita meat supply table, used when
// no dataset path is configured.
//
//go:embed percapita.csv
var PerCapitaCSV []byte
