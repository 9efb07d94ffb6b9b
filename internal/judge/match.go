package judge

import (
	"fmt"
	"math/rand/v2"

	"github.com/mrsobakin/battlesim/internal/game"
	"github.com/mrsobakin/battlesim/internal/game/field"
)

type State int

const (
	StateReset State = iota
	StateAwaitingShot
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateAwaitingShot:
		return "awaiting shot"
	case StateFinished:
		return "finished"
	default:
		panic("invalid state")
	}
}

// Turn describes a single resolved shot.
type Turn struct {
	Player game.Player
	Coord  field.Coord
	Shot   field.Shot
	Sunk   bool
}

type side struct {
	placer   game.Placer
	targeter game.Targeter
	boats    field.BoatMap
	fleet    *field.Fleet
	shots    field.ShotMap
}

// Match plays games between two fixed sides. Each side owns its targeter, so
// a Match must not be shared between goroutines, but separate Matches can run
// concurrently.
type Match struct {
	rng     *rand.Rand
	sides   [2]side
	state   State
	current game.Player
	winner  game.Player
}

func NewMatch(rng *rand.Rand, placeP1, placeP2 game.Placer, targetP1, targetP2 game.TargeterFactory) *Match {
	m := &Match{
		rng:   rng,
		state: StateReset,
	}

	m.sides[game.P1] = side{placer: placeP1, targeter: targetP1.NewTargeter(childRng(rng))}
	m.sides[game.P2] = side{placer: placeP2, targeter: targetP2.NewTargeter(childRng(rng))}

	return m
}

func childRng(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}

// CheckPlacer runs placer once on a throwaway generator and validates the
// fleet it produced.
func CheckPlacer(placer game.Placer) error {
	boats := placer.Place(rand.New(rand.NewPCG(0, 0)))
	return boats.Validate()
}

// Check validates a sample fleet from each placer.
func (m *Match) Check() error {
	for _, p := range game.Players {
		if err := CheckPlacer(m.side(p).placer); err != nil {
			return fmt.Errorf("%s placer: %w", p, err)
		}
	}
	return nil
}

func (m *Match) side(p game.Player) *side {
	return &m.sides[p]
}

// Reset starts a new game: fresh fleets, empty shot boards, P1 to move.
//
// A placer returning an invalid fleet is a programming error and panics with
// a *field.FleetError.
func (m *Match) Reset() {
	for _, p := range game.Players {
		s := m.side(p)

		s.boats = s.placer.Place(m.rng)
		if err := s.boats.Validate(); err != nil {
			panic(fmt.Errorf("%s placer: %w", p, err))
		}

		s.fleet = field.NewFleet(&s.boats)
		s.shots.Clear()

		if r, ok := s.targeter.(game.Resetter); ok {
			r.Reset()
		}
	}

	m.current = game.P1
	m.state = StateAwaitingShot
}

// Step lets the current player fire once and passes the turn.
func (m *Match) Step() Turn {
	if m.state != StateAwaitingShot {
		panic(fmt.Sprintf("step in state %s", m.state))
	}

	shooter := m.side(m.current)
	victim := m.side(m.current.Other())

	c := shooter.targeter.Target(&shooter.shots)
	assertLegal(m.current, &shooter.shots, c)

	shot := victim.fleet.Shoot(c)
	shooter.shots.Record(c, shot)

	turn := Turn{
		Player: m.current,
		Coord:  c,
		Shot:   shot,
		Sunk:   shot.IsHit() && victim.fleet.Sunk(shot.Boat()),
	}

	m.current = m.current.Other()

	if winner, ok := m.checkWinner(); ok {
		m.winner = winner
		m.state = StateFinished
	}

	return turn
}

func (m *Match) checkWinner() (game.Player, bool) {
	for _, p := range game.Players {
		if m.side(p).shots.HitCount() == field.TotalLength {
			return p, true
		}
	}
	return 0, false
}

// Winner reports the winner of the current game, if it is over.
func (m *Match) Winner() (game.Player, bool) {
	if m.state != StateFinished {
		return 0, false
	}
	return m.winner, true
}

func (m *Match) State() State {
	return m.state
}

// Current returns the player to move.
func (m *Match) Current() game.Player {
	return m.current
}

func (m *Match) Boats(p game.Player) *field.BoatMap {
	return &m.side(p).boats
}

func (m *Match) Shots(p game.Player) *field.ShotMap {
	return &m.side(p).shots
}

// PlayOne plays the current game to the end and returns the winner.
func (m *Match) PlayOne() game.Player {
	for m.state == StateAwaitingShot {
		m.Step()
	}

	winner, _ := m.Winner()
	return winner
}

// Play resets the match and plays one full game.
func (m *Match) Play() game.Player {
	m.Reset()
	return m.PlayOne()
}

// PlayGames plays n games and returns how many each side won.
func (m *Match) PlayGames(n int) (p1Wins, p2Wins int) {
	var tally Tally
	for range n {
		tally.Add(m.Play())
	}
	return tally.P1, tally.P2
}

// PlayAndRecord plays one full game and captures every shot board snapshot.
func (m *Match) PlayAndRecord() *Recording {
	m.Reset()

	rec := newRecording(m.Boats(game.P1), m.Boats(game.P2))
	for m.state == StateAwaitingShot {
		turn := m.Step()
		rec.addTurn(turn.Player, m.Shots(turn.Player))
	}

	rec.Winner = m.winner
	return rec
}
