// Package bootstrap implements the pre-flight reachability check (spec §5,
// §7): every bot endpoint must accept a TCP connection before the
// tournament starts, or startup aborts with a listing of the unreachable
// endpoints.
package bootstrap

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Endpoint is a bot's dial target.
type Endpoint struct {
	Name string
	Host string
	Port int
}

func (e Endpoint) addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// WaitForBots polls every endpoint concurrently until each accepts a TCP
// connection or the aggregate deadline elapses. It returns an error listing
// every endpoint still unreachable when the deadline expires.
func WaitForBots(ctx context.Context, endpoints []Endpoint, deadline time.Duration, retryInterval time.Duration) error {
	if deadline <= 0 {
		deadline = 5 * time.Second
	}
	if retryInterval <= 0 {
		retryInterval = 200 * time.Millisecond
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	unreachable := make(chan Endpoint, len(endpoints))

	for _, ep := range endpoints {
		ep := ep
		g.Go(func() error {
			if waitForOne(gctx, ep, retryInterval) {
				return nil
			}
			unreachable <- ep
			return nil
		})
	}

	_ = g.Wait()
	close(unreachable)

	var failed []string
	for ep := range unreachable {
		failed = append(failed, fmt.Sprintf("%s (%s)", ep.Name, ep.addr()))
	}
	if len(failed) > 0 {
		return fmt.Errorf("unreachable bot endpoints after %s:\n%s", deadline, strings.Join(failed, "\n"))
	}
	return nil
}

// waitForOne retries dialing ep until it succeeds or ctx is done.
func waitForOne(ctx context.Context, ep Endpoint, retryInterval time.Duration) bool {
	for {
		conn, err := (&net.Dialer{Timeout: retryInterval}).DialContext(ctx, "tcp", ep.addr())
		if err == nil {
			conn.Close()
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryInterval):
		}
	}
}
