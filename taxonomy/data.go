package taxonomy

import (
	"bytes"
	_ "embed"
)

// Default taxonomy table shipped with the binary. Versioned data, not code:
// adding an entry means editing data/taxonomy.json only.
//
//go:embed data/taxonomy.json
var defaultTable []byte

// Default returns the built-in strategic-management taxonomy.
func Default() (*Store, error) {
	return Load(bytes.NewReader(defaultTable))
}
