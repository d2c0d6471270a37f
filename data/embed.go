package data

import (
	_ "embed"
)

// GemstoneNames is the fixed gemstone vocabulary, one name per line
//
//go:embed gemstones.txt
var GemstoneNames string
