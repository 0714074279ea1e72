package tool

import (
	"fmt"
	"net/url"
)

// OpenWebif endpoint paths. These are fixed by the device firmware.
const (
	PathAbout       = "/api/about"
	PathStatusInfo  = "/api/statusinfo"
	PathBouquets    = "/api/bouquets"
	PathAllServices = "/api/getallservices"
	PathToggleMute  = "/web/vol?set=mute"

	// The remaining endpoints take their argument appended to the path.
	PathSetVolume     = "/api/vol?set=set"
	PathPowerstate    = "/api/powerstate?newstate="
	PathRemoteControl = "/api/remotecontrol?command="
	PathZap           = "/api/zap?sRef="
	PathEPGNow        = "/api/epgnow?bRef="
	PathGrab          = "/grab?format=jpg&r=720&mode=all&T="
)

// BuildBaseURL assembles the scheme://host:port root every request is
// resolved against.
func BuildBaseURL(scheme, host string, port int) (*url.URL, error) {
	if host == "" {
		return nil, fmt.Errorf("host must not be empty")
	}
	if scheme == "" {
		scheme = "http"
	}
	raw := fmt.Sprintf("%s://%s:%d", scheme, host, port)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %v", raw, err)
	}
	return u, nil
}

// BuildZapURL builds the zap URL for a service reference. Service refs
// contain colons, which must be query-escaped.
func BuildZapURL(base *url.URL, serviceRef string) string {
	return base.String() + PathZap + url.QueryEscape(serviceRef)
}

// BuildEPGNowURL builds the now-playing EPG URL for a bouquet reference.
func BuildEPGNowURL(base *url.URL, bouquetRef string) string {
	return base.String() + PathEPGNow + url.QueryEscape(bouquetRef)
}

// BuildPiconURL builds the picon image URL for an already-normalized picon
// file name.
func BuildPiconURL(base *url.URL, piconName string) string {
	return fmt.Sprintf("%s/picon/%s.png", base.String(), piconName)
}

// BuildGrabURL builds the screen-grab URL. The token defeats any cache
// between the caller and the box, so each grab is a fresh frame.
func BuildGrabURL(base *url.URL, token string) string {
	return base.String() + PathGrab + token
}
