//go:build !nobsassert

package judge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrsobakin/battlesim/internal/game/field"
	"github.com/mrsobakin/battlesim/internal/judge"
)

func TestMatch_IllegalTarget(t *testing.T) {
	stuck := factoryOf(stuckTargeter{field.Coord{X: 3, Y: 3}})
	m := judge.NewMatch(newRng(1), fixedPlacer, fixedPlacer, stuck, factoryOf(scanTargeter{}))
	m.Reset()

	m.Step()
	m.Step()
	assert.PanicsWithValue(t, "p1 targeter proposed illegal cell (3, 3)", func() { m.Step() })
}
