// Package tournament implements the tiered-bracket driver (spec §4.6):
// repeated rounds of table partitioning, blind escalation and survivor
// advancement until the field has shrunk to the target size.
package tournament

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jyoder/pokerbracket/internal/betting"
	"github.com/jyoder/pokerbracket/internal/cards"
	"github.com/jyoder/pokerbracket/internal/config"
	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/round"
	"github.com/jyoder/pokerbracket/internal/spectate"
	"github.com/jyoder/pokerbracket/internal/state"
)

// Entrant is one seat's persistent identity across the whole tournament.
type Entrant struct {
	Name string
	Host string
	Port int
}

// Standing is one entrant's chip count at a point in the tournament,
// used for the final standings board.
type Standing struct {
	Name  string
	Chips int
}

// Result is the outcome of a full tournament run.
type Result struct {
	Finalists []Standing // the survivors once |survivors| <= K
	Standings []Standing // every entrant ever seated, sorted by chips desc
}

// Run drives the tournament to completion: tiers of tables play down the
// field until at most cfg.Tournament.AdvancePerTable survivors remain. hub
// may be nil; when set, it receives a "standings_updated" event after every
// tier, in addition to the "hand_started"/"hand_ended" events playTable
// publishes for each hand.
func Run(log zerolog.Logger, cfg *config.Config, entrants []Entrant, ask betting.Asker, rng *rand.Rand, hub *spectate.Hub) Result {
	k := cfg.Tournament.AdvancePerTable
	if k < 1 {
		k = 1
	}

	survivors := make([]*player.Player, len(entrants))
	for i, e := range entrants {
		survivors[i] = &player.Player{
			Name:  e.Name,
			Host:  e.Host,
			Port:  e.Port,
			Chips: cfg.Game.StartingChips,
		}
	}

	standings := map[string]int{}
	recordStandings := func() {
		for _, p := range survivors {
			standings[p.Name] = p.Chips
		}
		if hub != nil {
			hub.Publish(spectate.Event{Event: "standings_updated", Data: sortedBoard(standings)})
		}
	}
	recordStandings()

	blindIndex := 0

	for len(survivors) > k {
		survivors = dropBusted(survivors)
		if len(survivors) <= k {
			break
		}

		shuffle(survivors, rng)
		tables := partition(survivors, cfg.Game.MaxTableSize)

		var advancers []*player.Player
		for _, table := range tables {
			level := cfg.BlindLevelAt(blindIndex)
			var played []*player.Player
			played, blindIndex = playTable(log, cfg, table, level, ask, rng, blindIndex, hub)
			table = dropBusted(played)

			sort.SliceStable(table, func(i, j int) bool { return table[i].Chips > table[j].Chips })
			take := k
			if take > len(table) {
				take = len(table)
			}
			advancers = append(advancers, dedupeByName(table[:take])...)
		}

		survivors = advancers
		recordStandings()
		blindIndex += cfg.Tournament.BlindStepPerTier
	}

	finalists := make([]Standing, 0, len(survivors))
	for _, p := range survivors {
		finalists = append(finalists, Standing{Name: p.Name, Chips: p.Chips})
	}
	sort.SliceStable(finalists, func(i, j int) bool { return finalists[i].Chips > finalists[j].Chips })

	return Result{Finalists: finalists, Standings: sortedBoard(standings)}
}

func sortedBoard(standings map[string]int) []Standing {
	board := make([]Standing, 0, len(standings))
	for name, chips := range standings {
		board = append(board, Standing{Name: name, Chips: chips})
	}
	sort.SliceStable(board, func(i, j int) bool { return board[i].Chips > board[j].Chips })
	return board
}

// playTable plays up to cfg.Tournament.HandsPerMatch hands at one table. The
// blind level is locked in for the whole table from the level it is dealt
// at start (spec §4.6 step 4: "select the current blind level"), but the
// shared blind index keeps advancing by the per-hand step after every hand
// so later tables in this tier see a higher level — this is the decided
// reading of an otherwise ambiguous spec passage (see design notes).
func playTable(log zerolog.Logger, cfg *config.Config, table []*player.Player, level config.BlindLevel, ask betting.Asker, rng *rand.Rand, blindIndex int, hub *spectate.Hub) ([]*player.Player, int) {
	g := &state.Game{
		SmallBlind: level.Small,
		BigBlind:   level.Big,
		Players:    table,
		Deck:       cards.New(cfg.Game.NumDecks, rng),
	}

	for hand := 0; hand < cfg.Tournament.HandsPerMatch; hand++ {
		if activeCount(g.Players) < 2 {
			break
		}

		if hub != nil {
			hub.Publish(spectate.Event{Event: "hand_started", Data: handStarted(g)})
		}
		result := round.Play(log, g, ask, round.Timeouts{Notify: true})
		if hub != nil {
			hub.Publish(spectate.Event{Event: "hand_ended", Data: handEnded(result)})
		}
		blindIndex += cfg.Tournament.BlindStepPerRound

		g.Players = dropBusted(g.Players)
		if len(g.Players) < 2 {
			break
		}
		rotateButton(g.Players)
	}
	return g.Players, blindIndex
}

// handStarted builds the spectator payload announcing a new hand at a
// table: the seated names and the blind level they're playing under.
func handStarted(g *state.Game) map[string]interface{} {
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name
	}
	return map[string]interface{}{
		"table":       names,
		"small_blind": g.SmallBlind,
		"big_blind":   g.BigBlind,
	}
}

// handEnded builds the spectator payload summarizing a completed hand.
func handEnded(result round.Result) map[string]interface{} {
	return map[string]interface{}{
		"played":     result.Played,
		"winners":    result.Winners,
		"reset_deck": result.ResetDeck,
	}
}

func activeCount(players []*player.Player) int {
	n := 0
	for _, p := range players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}

// rotateButton moves the head of the seat ring to the tail (spec §4.5).
func rotateButton(players []*player.Player) {
	if len(players) == 0 {
		return
	}
	first := players[0]
	copy(players, players[1:])
	players[len(players)-1] = first
}

// dropBusted removes any entrant with chips <= 0.
func dropBusted(players []*player.Player) []*player.Player {
	out := players[:0:0]
	for _, p := range players {
		if p.Chips > 0 {
			out = append(out, p)
		}
	}
	return out
}

// shuffle applies a uniform random permutation to players (randomized
// reseating between tiers, spec §4.6 step 2).
func shuffle(players []*player.Player, rng *rand.Rand) {
	n := len(players)
	for i := n - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		players[i], players[j] = players[j], players[i]
	}
}

// partition splits players into contiguous tables of up to size; the last
// table may be shorter (spec §4.6 step 3).
func partition(players []*player.Player, size int) [][]*player.Player {
	if size < 2 {
		size = 2
	}
	var tables [][]*player.Player
	for i := 0; i < len(players); i += size {
		end := i + size
		if end > len(players) {
			end = len(players)
		}
		tables = append(tables, players[i:end])
	}
	return tables
}

// dedupeByName defensively removes duplicate advancers by name (spec §4.6
// step 6), keeping the first occurrence.
func dedupeByName(players []*player.Player) []*player.Player {
	seen := make(map[string]bool, len(players))
	out := players[:0:0]
	for _, p := range players {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}
