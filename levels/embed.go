// Package levels embeds the default level documents, organized by mode.
package levels

import "embed"

//go:embed single_player ai_coop ai_race
var FS embed.FS
