package client

import (
	"context"
	"fmt"

	"github.com/fbradyirl/openwebif-go/tool"
)

// Powerstate arguments for /api/powerstate?newstate=.
const (
	PowerToggleStandby = "0"
	PowerDeepStandby   = "1"
	PowerWakeup        = "4"
	PowerStandby       = "5"
)

// Remote-control key codes for /api/remotecontrol?command=.
const (
	KeyChannelUp       = "402"
	KeyChannelDown     = "403"
	KeyPlayPauseToggle = "207"
	KeyStop            = "128"
)

func (c *Client) power(ctx context.Context, newstate string) (bool, error) {
	return c.command(ctx, c.base.String()+tool.PathPowerstate+newstate)
}

// keypress sends one remote-control key code. Keypresses share a rate
// limiter; boxes silently drop keys sent back-to-back.
func (c *Client) keypress(ctx context.Context, code string) (bool, error) {
	rawURL := c.base.String() + tool.PathRemoteControl + code
	if err := c.keys.Wait(ctx); err != nil {
		return false, &ConnError{URL: rawURL, Err: err}
	}
	return c.command(ctx, rawURL)
}

// ToggleStandby flips the box between standby and awake.
func (c *Client) ToggleStandby(ctx context.Context) (bool, error) {
	return c.power(ctx, PowerToggleStandby)
}

// TurnOn wakes the box from standby. When the box does not answer a ping
// probe and a MAC address is configured, a WOL magic packet is sent first
// so a box in deep standby has a chance to come up.
func (c *Client) TurnOn(ctx context.Context) (bool, error) {
	if c.mac != "" && !c.Probe(ctx) {
		c.log.Debugf("Box %s did not answer probe, sending WOL packet", c.base.Hostname())
		if err := c.WakeUp(); err != nil {
			c.log.Warnf("WOL failed: %v", err)
		}
	}
	return c.power(ctx, PowerWakeup)
}

// TurnOff puts the box into standby, or deep standby when the client was
// built with WithDeepStandby.
func (c *Client) TurnOff(ctx context.Context) (bool, error) {
	if c.deepStandby {
		return c.DeepStandby(ctx)
	}
	return c.power(ctx, PowerStandby)
}

// DeepStandby shuts the box down to deep standby. Only WOL brings it back.
func (c *Client) DeepStandby(ctx context.Context) (bool, error) {
	return c.power(ctx, PowerDeepStandby)
}

// TogglePlayPause sends the play/pause remote key.
func (c *Client) TogglePlayPause(ctx context.Context) (bool, error) {
	return c.keypress(ctx, KeyPlayPauseToggle)
}

// Stop sends the stop remote key.
func (c *Client) Stop(ctx context.Context) (bool, error) {
	return c.keypress(ctx, KeyStop)
}

// ChannelUp zaps to the next service in the current bouquet.
func (c *Client) ChannelUp(ctx context.Context) (bool, error) {
	return c.keypress(ctx, KeyChannelUp)
}

// ChannelDown zaps to the previous service in the current bouquet.
func (c *Client) ChannelDown(ctx context.Context) (bool, error) {
	return c.keypress(ctx, KeyChannelDown)
}

// ToggleMute flips the mute state. The /web/vol endpoint answers with XML,
// so success is judged by the status code alone.
func (c *Client) ToggleMute(ctx context.Context) (bool, error) {
	if err := c.get(ctx, c.base.String()+tool.PathToggleMute, nil); err != nil {
		return false, err
	}
	return true, nil
}

// SetVolume sets the volume. Levels outside 0-100 are clamped.
func (c *Client) SetVolume(ctx context.Context, level int) (bool, error) {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	rawURL := fmt.Sprintf("%s%s%d", c.base.String(), tool.PathSetVolume, level)
	var result struct {
		Result bool `json:"result"`
	}
	if err := c.get(ctx, rawURL, &result); err != nil {
		return false, err
	}
	return result.Result, nil
}

// Zap tunes the box to the given service reference.
func (c *Client) Zap(ctx context.Context, serviceRef string) (bool, error) {
	if serviceRef == "" {
		return false, fmt.Errorf("service reference must not be empty")
	}
	return c.command(ctx, tool.BuildZapURL(c.base, serviceRef))
}
