package batch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/dolthub/swiss"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/judge"
)

// Contender is a placement strategy paired with a targeting strategy.
type Contender struct {
	Placer   string `json:"placer"`
	Targeter string `json:"targeter"`
}

func (c Contender) String() string {
	return c.Placer + "+" + c.Targeter
}

// Contenders returns every placer paired with every targeter, placers outer.
func Contenders(placers, targeters []string) []Contender {
	contenders := make([]Contender, 0, len(placers)*len(targeters))
	for _, p := range placers {
		for _, t := range targeters {
			contenders = append(contenders, Contender{Placer: p, Targeter: t})
		}
	}
	return contenders
}

type matchup struct {
	p1, p2 int
}

// Matrix holds a tally for every ordered pair of contenders. Rows move first.
type Matrix struct {
	Contenders []Contender
	tallies    *swiss.Map[matchup, judge.Tally]
}

func NewMatrix(contenders []Contender) *Matrix {
	n := len(contenders)
	return &Matrix{
		Contenders: contenders,
		tallies:    swiss.NewMap[matchup, judge.Tally](uint32(n * n)),
	}
}

func (m *Matrix) Set(row, col int, tally judge.Tally) {
	m.tallies.Put(matchup{row, col}, tally)
}

// Tally returns the games played with row as P1 and col as P2.
func (m *Matrix) Tally(row, col int) (judge.Tally, bool) {
	return m.tallies.Get(matchup{row, col})
}

// WinRate returns the share of games row won as P1 against col.
func (m *Matrix) WinRate(row, col int) float64 {
	tally, _ := m.Tally(row, col)
	return tally.WinRate(game.P1)
}

// WriteCSV writes one row per P1 contender and one column per P2 contender.
// Cells hold P1 win rates; pairs that were never played are left empty.
func (m *Matrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(m.Contenders)+1)
	header = append(header, "p1\\p2")
	for _, c := range m.Contenders {
		header = append(header, c.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for row, c := range m.Contenders {
		record := make([]string, 0, len(m.Contenders)+1)
		record = append(record, c.String())

		for col := range m.Contenders {
			tally, ok := m.Tally(row, col)
			if !ok || tally.Games() == 0 {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(tally.WinRate(game.P1), 'f', 4, 64))
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type result struct {
	P1      string      `json:"p1"`
	P2      string      `json:"p2"`
	Tally   judge.Tally `json:"tally"`
	WinRate float64     `json:"win_rate"`
}

// Encoded as the contender list and one result per played pair, in row
// order.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	results := make([]result, 0, m.tallies.Count())
	for row, p1 := range m.Contenders {
		for col, p2 := range m.Contenders {
			tally, ok := m.Tally(row, col)
			if !ok {
				continue
			}
			results = append(results, result{
				P1:      p1.String(),
				P2:      p2.String(),
				Tally:   tally,
				WinRate: tally.WinRate(game.P1),
			})
		}
	}

	return json.Marshal(struct {
		Contenders []Contender `json:"contenders"`
		Results    []result    `json:"results"`
	}{m.Contenders, results})
}
