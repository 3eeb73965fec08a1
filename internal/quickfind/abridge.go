package quickfind

import (
	"strings"

	"github.com/rivo/uniseg"
)

const abridgeLimit = 20

// abridge shortens s to its first and last few characters around " .. "
// when it is longer than abridgeLimit grapheme clusters.
func abridge(s string) string {
	if uniseg.GraphemeClusterCount(s) <= abridgeLimit {
		return s
	}
	half := max(abridgeLimit/2-2, 0)

	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return strings.Join(clusters[:half], "") + " .. " + strings.Join(clusters[len(clusters)-half:], "")
}
