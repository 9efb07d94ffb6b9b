//go:build !nobsassert

package judge

import (
	"fmt"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

// Build with -tags nobsassert to drop the check.
func assertLegal(p game.Player, shots *field.ShotMap, c field.Coord) {
	if !field.IsLegalShot(shots, c) {
		panic(fmt.Sprintf("%s targeter proposed illegal cell %s", p, c))
	}
}
