package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/fbradyirl/openwebif-go/tool"
)

// newTestClient points a client at an httptest server URL.
func newTestClient(t *testing.T, rawURL string, opts ...Option) *Client {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("test server URL has no port: %v", err)
	}
	opts = append(opts, WithPort(port))
	c, err := New(u.Hostname(), opts...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

const statusBody = `{
	"result": true,
	"inStandby": "false",
	"currservice_name": "Nine O'Clock News",
	"currservice_station": "RTÉ One",
	"currservice_serviceref": "1:0:19:2887:40F:1:C00000:0:0:0:",
	"currservice_begin": "21:00",
	"currservice_end": "22:00",
	"currservice_description": "The day's stories",
	"volume": 80,
	"muted": false
}`

func TestNewRequiresHost(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty host")
	}
}

func TestStatusMatchesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != tool.PathStatusInfo {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statusBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	info, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if info.Station != "RTÉ One" {
		t.Errorf("Station = %q", info.Station)
	}
	if info.EventTitle != "Nine O'Clock News" {
		t.Errorf("EventTitle = %q", info.EventTitle)
	}
	if info.ServiceRef != "1:0:19:2887:40F:1:C00000:0:0:0:" {
		t.Errorf("ServiceRef = %q", info.ServiceRef)
	}
	if info.Volume != 80 || info.Muted {
		t.Errorf("Volume = %d, Muted = %t", info.Volume, info.Muted)
	}
	if info.Standby() {
		t.Error("Standby() = true for awake box")
	}
	if info.Playback().String() != "live" {
		t.Errorf("Playback = %s, want live", info.Playback())
	}
}

func TestStatusRecordingPlayback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": true, "inStandby": "false", "currservice_serviceref": "1:0:0:0:0:0:0:0:0:0:/media/hdd/movie/rec.ts"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	info, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if info.Playback().String() != "recording" {
		t.Errorf("Playback = %s, want recording", info.Playback())
	}
}

func TestMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>this box speaks no JSON</html>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.Status(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	} else {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error is %T, want *ParseError: %v", err, err)
		}
	}

	if _, err := c.Bouquets(context.Background()); err == nil {
		t.Fatal("expected error for malformed bouquets body")
	} else {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error is %T, want *ParseError: %v", err, err)
		}
	}
}

func TestUnreachableHostIsConnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close() // now nothing listens there

	c := newTestClient(t, base)
	_, err := c.Status(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("error is %T, want *ConnError: %v", err, err)
	}
	if connErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for a request that never completed", connErr.Status)
	}
}

func TestAuthFailureIsConnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithCredentials("root", "wrong"))
	_, err := c.Status(context.Background())
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("error is %T, want *ConnError: %v", err, err)
	}
	if connErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", connErr.Status)
	}
}

func TestMissingPluginIsConnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Status(context.Background())
	var connErr *ConnError
	if !errors.As(err, &connErr) {
		t.Fatalf("error is %T, want *ConnError: %v", err, err)
	}
	if connErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", connErr.Status)
	}
}

func TestBasicAuthHeaderSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "root" || pass != "dreambox" {
			t.Errorf("basic auth = %q/%q (ok=%t)", user, pass, ok)
		}
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithCredentials("root", "dreambox"))
	if _, err := c.ToggleStandby(context.Background()); err != nil {
		t.Fatalf("ToggleStandby failed: %v", err)
	}
}

func TestEmptyBouquetsIsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bouquets": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	bouquets, err := c.Bouquets(context.Background())
	if err != nil {
		t.Fatalf("Bouquets failed: %v", err)
	}
	if bouquets == nil || len(bouquets) != 0 {
		t.Errorf("Bouquets = %#v, want empty slice", bouquets)
	}

	// No bouquets configured means no sources either, and no error.
	sources, err := c.BouquetSources(context.Background(), "")
	if err != nil {
		t.Fatalf("BouquetSources failed: %v", err)
	}
	if sources == nil || len(sources) != 0 {
		t.Errorf("BouquetSources = %#v, want empty slice", sources)
	}
}

func TestBouquetPairDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bouquets": [
			["1:7:1:0:0:0:0:0:0:0:FROM BOUQUET \"userbouquet.favourites.tv\" ORDER BY bouquet", "Favourites (TV)"],
			["1:7:1:0:0:0:0:0:0:0:FROM BOUQUET \"userbouquet.radio.tv\" ORDER BY bouquet", "Radio"]
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	bouquets, err := c.Bouquets(context.Background())
	if err != nil {
		t.Fatalf("Bouquets failed: %v", err)
	}
	if len(bouquets) != 2 {
		t.Fatalf("got %d bouquets, want 2", len(bouquets))
	}
	if bouquets[0].Name != "Favourites (TV)" {
		t.Errorf("first bouquet name = %q", bouquets[0].Name)
	}
	if bouquets[1].Ref == "" || bouquets[1].Name != "Radio" {
		t.Errorf("second bouquet = %+v", bouquets[1])
	}
}

func TestCommandsSendExactlyOneRequest(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	ok, err := c.ToggleStandby(ctx)
	if err != nil || !ok {
		t.Fatalf("ToggleStandby = %t, %v", ok, err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("ToggleStandby sent %d requests, want 1", n)
	}

	ok, err = c.ChannelUp(ctx)
	if err != nil || !ok {
		t.Fatalf("ChannelUp = %t, %v", ok, err)
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("ChannelUp sent %d extra requests, want 1", n-1)
	}
}

func TestCommandReturnsDeviceAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": false, "message": "Missing remote"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ok, err := c.TogglePlayPause(context.Background())
	if err != nil {
		t.Fatalf("TogglePlayPause failed: %v", err)
	}
	if ok {
		t.Error("expected false ack to pass through")
	}
}

func TestSequentialStatusCallsAreIndependent(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"result": true, "inStandby": "false", "volume": 10}`))
			return
		}
		_, _ = w.Write([]byte(`{"result": true, "inStandby": "true", "volume": 90}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	first, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("first Status failed: %v", err)
	}
	second, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("second Status failed: %v", err)
	}

	if first.Volume != 10 || first.Standby() {
		t.Errorf("first snapshot = %+v", first)
	}
	if second.Volume != 90 || !second.Standby() {
		t.Errorf("second snapshot carries stale state: %+v", second)
	}
}

func TestToggleMuteAcceptsXMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web/vol" || r.URL.Query().Get("set") != "mute" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?><e2volume><e2result>True</e2result></e2volume>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ok, err := c.ToggleMute(context.Background())
	if err != nil {
		t.Fatalf("ToggleMute failed: %v", err)
	}
	if !ok {
		t.Error("ToggleMute = false for 200 response")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	var gotSet string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSet = r.URL.Query().Get("set")
		_, _ = w.Write([]byte(`{"result": true, "current": 100, "ismute": false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ok, err := c.SetVolume(context.Background(), 250)
	if err != nil || !ok {
		t.Fatalf("SetVolume = %t, %v", ok, err)
	}
	if gotSet != "set100" {
		t.Errorf("set parameter = %q, want set100", gotSet)
	}
}

func TestZapEmptyRefFails(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	if _, err := c.Zap(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty service ref")
	}
}

func TestMACAddressPicksWiredInterface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info": {"webifver": "OWIF 1.3.6", "ifaces": [
			{"name": "wlan0", "mac": "AA:AA:AA:AA:AA:AA", "ip": "10.0.0.8"},
			{"name": "eth0", "mac": "00:09:34:27:C4:64", "ip": "10.0.0.9"}
		]}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	mac, err := c.MACAddress(context.Background())
	if err != nil {
		t.Fatalf("MACAddress failed: %v", err)
	}
	if mac != "00:09:34:27:C4:64" {
		t.Errorf("MACAddress = %q, want the eth0 MAC", mac)
	}

	version, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != "OWIF 1.3.6" {
		t.Errorf("Version = %q", version)
	}
}

func TestBouquetSourcesPreserveOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tool.PathBouquets:
			_, _ = w.Write([]byte(`{"bouquets": [["bref1", "Favourites"]]}`))
		case "/api/epgnow":
			if r.URL.Query().Get("bRef") != "bref1" {
				t.Errorf("bRef = %q, want bref1", r.URL.Query().Get("bRef"))
			}
			_, _ = w.Write([]byte(`{"result": true, "events": [
				{"sname": "Das Erste HD", "sref": "ref-a", "title": "Tagesschau"},
				{"sname": "ZDF HD", "sref": "ref-b", "title": "heute"}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	sources, err := c.BouquetSources(context.Background(), "")
	if err != nil {
		t.Fatalf("BouquetSources failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Name != "Das Erste HD" || sources[0].Ref != "ref-a" {
		t.Errorf("first source = %+v", sources[0])
	}
	if sources[1].Name != "ZDF HD" {
		t.Errorf("second source = %+v", sources[1])
	}
}
