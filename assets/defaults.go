package assets

import (
	_ "embed"
)

// Banner contains the ASCII startup banner.
//
//go:embed banner.txt
var Banner string
