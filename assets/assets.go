// Package assets embeds the static game data.
package assets

import _ "embed"

// Ships is the ship catalog.
//
//go:embed ships.yaml
var Ships []byte

// Events is the pool of hand-written events used by the offline narrator.
//
//go:embed events.yaml
var Events []byte
