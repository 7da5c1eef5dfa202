// Command pokerbracket runs a full no-limit hold'em bracket tournament
// against TCP bot endpoints described in a JSON configuration file.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/jyoder/pokerbracket/internal/betting"
	"github.com/jyoder/pokerbracket/internal/bootstrap"
	"github.com/jyoder/pokerbracket/internal/config"
	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/spectate"
	"github.com/jyoder/pokerbracket/internal/state"
	"github.com/jyoder/pokerbracket/internal/tournament"
	"github.com/jyoder/pokerbracket/internal/transport"
)

type CLI struct {
	Config        string `kong:"arg,required,help='Path to the tournament JSON config file.'"`
	BlindOverlay  string `kong:"help='Optional HCL file overlaying individual blind tiers.'"`
	Debug         bool   `kong:"help='Enable debug logging.'"`
	Seed          int64  `kong:"default='0',help='RNG seed (0 derives a seed from the current time).'"`
	PreflightWait int    `kong:"name='preflight-wait-ms',default='5000',help='Aggregate deadline for bot reachability checks, in milliseconds.'"`
	SpectateAddr  string `kong:"name='spectate-addr',help='If set, serve a read-only websocket spectator feed on this address (e.g. :8090).'"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("pokerbracket"),
		kong.Description("Runs a bracketed no-limit hold'em tournament against TCP bot endpoints."),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if err := run(cli, logger); err != nil {
		logger.Error().Err(err).Msg("tournament aborted")
		os.Exit(1)
	}
}

func run(cli CLI, logger zerolog.Logger) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.BlindOverlay != "" {
		if err := cfg.ApplyBlindOverlay(cli.BlindOverlay); err != nil {
			return err
		}
	}

	if len(cfg.Bots) < 2 {
		return fmt.Errorf("pokerbracket: at least 2 bots are required, got %d", len(cfg.Bots))
	}

	endpoints := make([]bootstrap.Endpoint, len(cfg.Bots))
	entrants := make([]tournament.Entrant, len(cfg.Bots))
	for i, b := range cfg.Bots {
		endpoints[i] = bootstrap.Endpoint{Name: b.Name, Host: b.Host, Port: b.Port}
		entrants[i] = tournament.Entrant{Name: b.Name, Host: b.Host, Port: b.Port}
	}

	ctx := context.Background()
	preflightDeadline := time.Duration(cli.PreflightWait) * time.Millisecond
	if err := bootstrap.WaitForBots(ctx, endpoints, preflightDeadline, 200*time.Millisecond); err != nil {
		return err
	}

	var hub *spectate.Hub
	if cli.SpectateAddr != "" {
		hub = spectate.NewHub(logger)
		mux := http.NewServeMux()
		mux.Handle("/spectate", hub)
		go func() {
			if err := http.ListenAndServe(cli.SpectateAddr, mux); err != nil {
				logger.Warn().Err(err).Msg("spectate server exited")
			}
		}()
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	names := make(map[string]string, len(cfg.Bots))
	for _, b := range cfg.Bots {
		names[fmt.Sprintf("%s:%d", b.Host, b.Port)] = b.Name
	}

	result := tournament.Run(logger, cfg, entrants, transportAsker(hub, names), rng, hub)

	logger.Info().Msg("tournament complete")
	printStandings(os.Stdout, "finalists", result.Finalists)
	printStandings(os.Stdout, "final standings", result.Standings)

	for _, b := range cfg.Bots {
		transport.Terminate(logger, transport.Bot{Host: b.Host, Port: b.Port}, transport.DefaultTerminateTimeout)
	}

	return nil
}

// transportAsker adapts transport.Ask into a betting.Asker, publishing an
// "action_taken" event to the spectator hub (when one is configured) for
// every action a seat takes. names maps a bot's "host:port" address back to
// its display name.
func transportAsker(hub *spectate.Hub, names map[string]string) betting.Asker {
	return func(log zerolog.Logger, bot transport.Bot, st state.ActState, timeout time.Duration) player.Action {
		action := transport.Ask(log, bot, st, timeout)
		if hub != nil {
			seat := names[fmt.Sprintf("%s:%d", bot.Host, bot.Port)]
			hub.Publish(spectate.Event{Event: "action_taken", Data: map[string]interface{}{
				"seat":   seat,
				"move":   action.Kind.String(),
				"amount": action.Amount,
			}})
		}
		return action
	}
}

func printStandings(w *os.File, title string, standings []tournament.Standing) {
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Chips > standings[j].Chips })
	fmt.Fprintf(w, "\n-- %s --\n", title)
	for i, s := range standings {
		fmt.Fprintf(w, "%2d. %-20s %d\n", i+1, s.Name, s.Chips)
	}
}
