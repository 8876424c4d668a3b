package render

import "maps"

// FallbackColor is used for teams outside the palette and for empty results.
const FallbackColor = "#e0e0e0"

var teamColors = map[string]string{
	"Besiktas":    "black",
	"Fenerbahce":  "navy",
	"Galatasaray": "red",
	"Trabzonspor": "maroon",
}

// TeamColors returns a copy of the club palette.
func TeamColors() map[string]string {
	return maps.Clone(teamColors)
}

func ColorFor(team string) string {
	if c, ok := teamColors[team]; ok {
		return c
	}
	return FallbackColor
}
