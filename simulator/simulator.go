// Package simulator implements a fake OpenWebif device: the endpoint
// surface of a real box backed by in-memory state. It exists for the CLI's
// -simulate mode and for integration tests that need a box on the bench.
package simulator

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fbradyirl/openwebif-go/tool"
	"github.com/fbradyirl/openwebif-go/types"
)

// Fixed metadata the simulator reports via /api/about.
const (
	simWebifVersion = "OWIF 1.4.9"
	simBoxType      = "simulator"
	simMAC          = "00:11:22:33:44:55"
)

// Minimal valid image stubs for picon and screen-grab responses.
var (
	pngStub  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegStub = []byte{0xFF, 0xD8, 0xFF, 0xDB}
)

// Simulator serves the OpenWebif API from in-memory state.
type Simulator struct {
	state  *State
	engine *gin.Engine
}

// New builds a simulator with the given lineup (empty means the builtin
// default lineup).
func New(bouquets []tool.SimBouquet) *Simulator {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Simulator{
		state:  NewState(bouquets),
		engine: engine,
	}
	s.registerRoutes()
	return s
}

// State exposes the device state, mainly so tests can assert on it.
func (s *Simulator) State() *State {
	return s.state
}

// Handler returns the simulator as an http.Handler for httptest servers.
func (s *Simulator) Handler() http.Handler {
	return s.engine
}

// Run serves the simulator on the given port, with a self-signed
// certificate when useTLS is set, and blocks until the server stops.
func (s *Simulator) Run(port int, useTLS bool) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	tool.DefaultLogger.Infof("Simulated OpenWebif device listening on %s://0.0.0.0:%d", scheme, port)

	if useTLS {
		cert, err := tool.GenerateTLSCert()
		if err != nil {
			return fmt.Errorf("failed to generate TLS certificate: %v", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		return srv.ListenAndServeTLS("", "")
	}
	return srv.ListenAndServe()
}

func (s *Simulator) registerRoutes() {
	s.engine.GET("/api/statusinfo", s.handleStatusInfo)
	s.engine.GET("/api/about", s.handleAbout)
	s.engine.GET("/api/powerstate", s.handlePowerstate)
	s.engine.GET("/api/remotecontrol", s.handleRemoteControl)
	s.engine.GET("/api/vol", s.handleVolume)
	s.engine.GET("/web/vol", s.handleWebVolume)
	s.engine.GET("/api/zap", s.handleZap)
	s.engine.GET("/api/bouquets", s.handleBouquets)
	s.engine.GET("/api/getallservices", s.handleAllServices)
	s.engine.GET("/api/epgnow", s.handleEPGNow)
	s.engine.GET("/picon/:file", s.handlePicon)
	s.engine.HEAD("/picon/:file", s.handlePicon)
	s.engine.GET("/grab", s.handleGrab)
	s.engine.HEAD("/grab", s.handleGrab)
}

func (s *Simulator) handleStatusInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.StatusInfo())
}

func (s *Simulator) handleAbout(c *gin.Context) {
	c.JSON(http.StatusOK, types.About{
		Info: types.AboutInfo{
			WebifVersion: simWebifVersion,
			BoxType:      simBoxType,
			Ifaces: []types.Iface{
				{Name: "eth0", MAC: simMAC, IP: "127.0.0.1"},
			},
		},
	})
}

func (s *Simulator) handlePowerstate(c *gin.Context) {
	standby, ok := s.state.SetPowerstate(c.Query("newstate"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"result": false, "message": "unknown newstate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "instandby": strconv.FormatBool(standby)})
}

func (s *Simulator) handleRemoteControl(c *gin.Context) {
	var ok bool
	switch c.Query("command") {
	case "402":
		ok = s.state.Step(1)
	case "403":
		ok = s.state.Step(-1)
	case "207", "128":
		// Play/pause and stop are acknowledged; the simulator carries no
		// playback position to change.
		ok = true
	default:
		ok = false
	}
	c.JSON(http.StatusOK, types.CommandResult{Result: ok})
}

func (s *Simulator) handleVolume(c *gin.Context) {
	set := c.Query("set")
	if !strings.HasPrefix(set, "set") {
		c.JSON(http.StatusOK, gin.H{"result": false, "message": "unsupported vol command"})
		return
	}
	level, err := strconv.Atoi(strings.TrimPrefix(set, "set"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"result": false, "message": "invalid volume"})
		return
	}
	current := s.state.SetVolume(level)
	_, muted := s.state.Volume()
	c.JSON(http.StatusOK, types.VolumeResult{Result: true, Current: current, IsMute: muted})
}

// handleWebVolume mirrors the legacy /web/vol endpoint, which answers in
// XML rather than JSON.
func (s *Simulator) handleWebVolume(c *gin.Context) {
	if c.Query("set") != "mute" {
		c.String(http.StatusBadRequest, "unsupported set command")
		return
	}
	muted := s.state.ToggleMute()
	volume, _ := s.state.Volume()
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<e2volume>\n\t<e2result>True</e2result>\n\t<e2resulttext>state</e2resulttext>\n\t<e2current>%d</e2current>\n\t<e2ismuted>%t</e2ismuted>\n</e2volume>",
		volume, muted)
}

func (s *Simulator) handleZap(c *gin.Context) {
	ref := c.Query("sRef")
	if s.state.Zap(ref) {
		c.JSON(http.StatusOK, types.CommandResult{Result: true, Message: fmt.Sprintf("Active service is now '%s'", s.state.Current().Name)})
		return
	}
	c.JSON(http.StatusOK, types.CommandResult{Result: false, Message: "invalid service reference"})
}

func (s *Simulator) handleBouquets(c *gin.Context) {
	c.JSON(http.StatusOK, types.BouquetsResponse{Bouquets: s.state.Bouquets()})
}

func (s *Simulator) handleAllServices(c *gin.Context) {
	c.JSON(http.StatusOK, types.AllServicesResponse{Result: true, Services: s.state.ServiceGroups()})
}

func (s *Simulator) handleEPGNow(c *gin.Context) {
	services := s.state.Services(c.Query("bRef"))
	events := make([]types.EPGEvent, 0, len(services))
	for _, svc := range services {
		events = append(events, types.EPGEvent{
			ServiceName: svc.Name,
			ServiceRef:  svc.Ref,
			Title:       nowPlayingTitle(svc),
		})
	}
	c.JSON(http.StatusOK, types.EPGNowResponse{Result: true, Events: events})
}

// handlePicon serves a stub PNG for picons of services in the lineup and
// 404 for everything else, so picon URL probing behaves like a real box.
func (s *Simulator) handlePicon(c *gin.Context) {
	file := c.Param("file")
	for _, group := range s.state.ServiceGroups() {
		for _, svc := range group.Services {
			if file == tool.PiconName(svc.Name)+".png" {
				c.Data(http.StatusOK, "image/png", pngStub)
				return
			}
		}
	}
	c.Status(http.StatusNotFound)
}

func (s *Simulator) handleGrab(c *gin.Context) {
	c.Data(http.StatusOK, "image/jpeg", jpegStub)
}
