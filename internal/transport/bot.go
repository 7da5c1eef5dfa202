// Package transport implements the one-shot TCP request/response contract
// used to solicit an action from a bot endpoint (spec §4.3). Every failure
// mode — refused connections, timeouts, garbage bytes, unknown moves — is
// converted to a Fold rather than propagated, so a single misbehaving bot
// can never stall or crash the engine.
package transport

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/state"
	"github.com/jyoder/pokerbracket/internal/wire"
)

// Default per-call deadlines (spec §5).
const (
	DefaultActTimeout       = 5 * time.Second
	DefaultEndNotifyTimeout = 2 * time.Second
	DefaultTerminateTimeout = 1 * time.Second
)

// actRequest is the {"op":"act","state":STATE} envelope.
type actRequest struct {
	Op    string          `json:"op"`
	State state.ActState `json:"state"`
}

// endRequest is the {"op":"end","state":END_STATE} envelope.
type endRequest struct {
	Op    string         `json:"op"`
	State state.EndState `json:"state"`
}

// terminateRequest is the {"op":"terminate"} envelope.
type terminateRequest struct {
	Op string `json:"op"`
}

// actReply is the bot's raw reply to an "act" request. Amount may legally
// arrive as a JSON number or a numeric string under any of its aliases, so
// every alias is decoded as json.Number and coerced at parse time.
type actReply struct {
	Move    string      `json:"move"`
	Amount  json.Number `json:"amount"`
	RaiseTo json.Number `json:"raise_to"`
	Value   json.Number `json:"value"`
	Amt     json.Number `json:"amt"`
}

// Bot addresses one seat's TCP endpoint.
type Bot struct {
	Host string
	Port int
}

func (b Bot) addr() string {
	return net.JoinHostPort(b.Host, strconv.Itoa(b.Port))
}

// Ask opens a fresh TCP connection to the bot, sends the current STATE, and
// returns the parsed Action. Any transport anomaly — refused connection,
// timeout, truncated frame, malformed JSON, unknown move, non-integer raise
// amount — is logged as a warning and converted to Fold; Ask itself never
// returns an error.
func Ask(log zerolog.Logger, bot Bot, st state.ActState, timeout time.Duration) player.Action {
	if timeout <= 0 {
		timeout = DefaultActTimeout
	}

	action, err := ask(bot, st, timeout)
	if err != nil {
		log.Warn().Err(err).Str("bot", bot.addr()).Msg("bot transport error, folding")
		return player.FoldAction()
	}
	return action
}

func ask(bot Bot, st state.ActState, timeout time.Duration) (player.Action, error) {
	conn, err := net.DialTimeout("tcp", bot.addr(), timeout)
	if err != nil {
		return player.Action{}, fmt.Errorf("transport: connect: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return player.Action{}, fmt.Errorf("transport: set deadline: %w", err)
	}

	codec := wire.New(conn)
	if err := codec.WriteJSON(actRequest{Op: "act", State: st}); err != nil {
		return player.Action{}, fmt.Errorf("transport: send act: %w", err)
	}

	var reply actReply
	if err := codec.ReadJSON(&reply); err != nil {
		return player.Action{}, fmt.Errorf("transport: read act reply: %w", err)
	}

	return parseAction(reply)
}

func parseAction(reply actReply) (player.Action, error) {
	move := strings.ToLower(strings.TrimSpace(reply.Move))
	switch move {
	case "fold":
		return player.FoldAction(), nil
	case "check":
		return player.CheckAction(), nil
	case "call":
		return player.CallAction(), nil
	case "raise":
		amt, ok := firstPresent(reply.Amount, reply.RaiseTo, reply.Value, reply.Amt)
		if !ok {
			return player.Action{}, fmt.Errorf("transport: raise missing integer amount")
		}
		return player.RaiseTo(amt), nil
	default:
		return player.Action{}, fmt.Errorf("transport: unknown move %q", reply.Move)
	}
}

// firstPresent returns the first non-empty json.Number among candidates,
// coerced to an int. It reports false if none are present or the present
// one is not integer-coercible.
func firstPresent(candidates ...json.Number) (int, bool) {
	for _, n := range candidates {
		if n == "" {
			continue
		}
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	}
	return 0, false
}

// NotifyEnd sends the end-of-hand state to a seat. No reply is expected;
// send failures are logged and ignored, matching the fire-and-forget
// contract in spec §4.3.
func NotifyEnd(log zerolog.Logger, bot Bot, st state.EndState, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultEndNotifyTimeout
	}
	if err := notify(bot, endRequest{Op: "end", State: st}, timeout); err != nil {
		log.Warn().Err(err).Str("bot", bot.addr()).Msg("end notification failed, ignoring")
	}
}

// Terminate asks a bot to close. The reply, if any, is discarded.
func Terminate(log zerolog.Logger, bot Bot, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultTerminateTimeout
	}
	if err := notify(bot, terminateRequest{Op: "terminate"}, timeout); err != nil {
		log.Warn().Err(err).Str("bot", bot.addr()).Msg("terminate notification failed, ignoring")
	}
}

func notify(bot Bot, payload interface{}, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", bot.addr(), timeout)
	if err != nil {
		return fmt.Errorf("transport: connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("transport: set deadline: %w", err)
	}

	codec := wire.New(conn)
	if err := codec.WriteJSON(payload); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}
