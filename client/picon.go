package client

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fbradyirl/openwebif-go/tool"
)

// ScreenGrabURL returns the URL of a live screen grab of the box. The
// random token keeps intermediaries from serving a stale frame.
func (c *Client) ScreenGrabURL() string {
	return tool.BuildGrabURL(c.base, uuid.NewString())
}

// PiconURL resolves an image URL for the currently playing channel, or ""
// when nothing resolves. With WithPreferPicon it tries, in order: the picon
// derived from the channel name, the non-HD variant for channels ending in
// "HD", and the picon derived from the service reference. The fallback is
// always a screen grab.
//
// Candidate URLs are verified with a HEAD request; URLs known to exist are
// remembered for a while so repeated status updates don't re-probe the box.
func (c *Client) PiconURL(ctx context.Context, channelName, serviceRef string) string {
	if c.preferPicon && channelName != "" {
		if u := tool.BuildPiconURL(c.base, tool.PiconName(channelName)); c.urlExists(ctx, u) {
			return u
		}

		// HD channels often reuse the SD picon.
		if lower := strings.ToLower(channelName); strings.HasSuffix(lower, "hd") {
			trimmed := strings.Join(strings.Fields(channelName[:len(channelName)-2]), "")
			if u := tool.BuildPiconURL(c.base, tool.PiconName(trimmed)); c.urlExists(ctx, u) {
				return u
			}
		}

		// Older picon sets are keyed by service reference,
		// e.g. 1:0:19:2887:40F:1:C00000:0:0:0: -> 1_0_19_2887_40F_1_C00000_0_0_0.png
		if serviceRef != "" {
			name := strings.ReplaceAll(strings.Trim(serviceRef, ":"), ":", "_")
			if u := tool.BuildPiconURL(c.base, name); c.urlExists(ctx, u) {
				return u
			}
		}

		c.log.Debugf("No picon found for %q, falling back to screen grab", channelName)
	}

	grab := c.ScreenGrabURL()
	if c.urlExists(ctx, grab) {
		return grab
	}
	return ""
}

// urlExists checks whether a URL answers a HEAD request with 200, using
// the TTL cache to skip probes for URLs recently seen to exist.
func (c *Client) urlExists(ctx context.Context, rawURL string) bool {
	if c.piconSeen.Get(rawURL) {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debugf("HEAD %s failed: %v", rawURL, err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		c.piconSeen.Set(rawURL, true)
		return true
	}
	return false
}
