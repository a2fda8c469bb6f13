package loadbalancer

import (
	"sync"
	"time"

	"github.com/fleetops/depot-backend/pkg/logger"
)

// downCooldown is how long a failed instance sits out before the
// rotation offers it again
const downCooldown = 15 * time.Second

type instance struct {
	url       string
	downUntil time.Time
	failures  int
}

// RoundRobin rotates over a service's instances, skipping the ones the
// proxy recently failed to reach. The proxy reports outcomes through
// MarkDown and MarkUp after each attempt.
type RoundRobin struct {
	instances []*instance
	current   int
	mu        sync.Mutex
}

// NewRoundRobin creates a new round-robin load balancer
func NewRoundRobin(servers []string) *RoundRobin {
	if len(servers) == 0 {
		servers = []string{"http://localhost:8080"} // Default fallback
	}

	instances := make([]*instance, len(servers))
	for i, url := range servers {
		instances[i] = &instance{url: url}
	}

	logger.Logger.Info().
		Int("instance_count", len(servers)).
		Strs("instances", servers).
		Msg("Round-robin load balancer initialized")

	return &RoundRobin{instances: instances}
}

// Next returns the next instance in rotation, preferring ones not in
// cooldown. When every instance is marked down the rotation continues
// over all of them: a stale mark must not make the service unreachable.
func (rr *RoundRobin) Next() string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if len(rr.instances) == 0 {
		return ""
	}

	now := time.Now()
	for i := 0; i < len(rr.instances); i++ {
		inst := rr.instances[rr.current]
		rr.current = (rr.current + 1) % len(rr.instances)
		if inst.downUntil.Before(now) {
			return inst.url
		}
	}

	inst := rr.instances[rr.current]
	rr.current = (rr.current + 1) % len(rr.instances)
	return inst.url
}

// MarkDown takes an instance out of rotation for the cooldown period
func (rr *RoundRobin) MarkDown(url string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for _, inst := range rr.instances {
		if inst.url == url {
			inst.downUntil = time.Now().Add(downCooldown)
			inst.failures++
			logger.Logger.Warn().
				Str("instance", url).
				Int("failures", inst.failures).
				Dur("cooldown", downCooldown).
				Msg("Instance marked down")
			return
		}
	}
}

// MarkUp returns an instance to rotation after a successful request
func (rr *RoundRobin) MarkUp(url string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	for _, inst := range rr.instances {
		if inst.url == url {
			if !inst.downUntil.IsZero() && inst.downUntil.After(time.Now()) {
				logger.Logger.Info().
					Str("instance", url).
					Msg("Instance back in rotation")
			}
			inst.downUntil = time.Time{}
			return
		}
	}
}

// GetServers returns all configured instance URLs
func (rr *RoundRobin) GetServers() []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	urls := make([]string, len(rr.instances))
	for i, inst := range rr.instances {
		urls[i] = inst.url
	}
	return urls
}

// GetStats returns load balancer statistics
func (rr *RoundRobin) GetStats() map[string]interface{} {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	now := time.Now()
	available := 0
	instances := make([]map[string]interface{}, len(rr.instances))
	for i, inst := range rr.instances {
		up := inst.downUntil.Before(now)
		if up {
			available++
		}
		instances[i] = map[string]interface{}{
			"url":      inst.url,
			"up":       up,
			"failures": inst.failures,
		}
	}

	return map[string]interface{}{
		"algorithm":      "round-robin",
		"instance_count": len(rr.instances),
		"available":      available,
		"instances":      instances,
	}
}
