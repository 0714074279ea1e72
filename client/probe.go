package client

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/fbradyirl/openwebif-go/tool"
)

const probeTimeout = 2 * time.Second

// Probe reports whether the box answers a ping. A box in deep standby does
// not, which is how TurnOn decides to send a WOL packet first.
func (c *Client) Probe(ctx context.Context) bool {
	pinger, err := probing.NewPinger(c.base.Hostname())
	if err != nil {
		c.log.Debugf("Probe setup for %s failed: %v", c.base.Hostname(), err)
		return false
	}
	pinger.Count = 1
	pinger.Timeout = probeTimeout
	pinger.SetPrivileged(false)

	if err := pinger.RunWithContext(ctx); err != nil {
		c.log.Debugf("Probe of %s failed: %v", c.base.Hostname(), err)
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}

// WakeUp broadcasts a wake-on-LAN magic packet to the configured MAC.
func (c *Client) WakeUp() error {
	if c.mac == "" {
		return fmt.Errorf("cannot wake up box: no MAC address configured")
	}
	return tool.SendMagicPacket(c.mac)
}
