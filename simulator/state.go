package simulator

import (
	"fmt"
	"sync"

	"github.com/fbradyirl/openwebif-go/tool"
	"github.com/fbradyirl/openwebif-go/types"
)

// Lineup is one simulated bouquet with its services.
type Lineup struct {
	Bouquet  types.Bouquet
	Services []types.Service
}

// State is the mutable half of the fake box: what it is tuned to, whether
// it sleeps, how loud it is. All access goes through the mutex.
type State struct {
	mu      sync.RWMutex
	standby bool
	volume  int
	muted   bool
	lineup  []Lineup
	current types.Service
}

// NewState builds the device state from a configured lineup, or from a
// small builtin lineup when none is configured.
func NewState(bouquets []tool.SimBouquet) *State {
	lineup := make([]Lineup, 0, len(bouquets))
	for i, b := range bouquets {
		ref := b.Ref
		if ref == "" {
			ref = fmt.Sprintf("1:7:1:0:0:0:0:0:0:0:FROM BOUQUET \"userbouquet.sim%d.tv\" ORDER BY bouquet", i)
		}
		l := Lineup{Bouquet: types.Bouquet{Ref: ref, Name: b.Name}}
		for _, svc := range b.Services {
			l.Services = append(l.Services, types.Service{Ref: svc.Ref, Name: svc.Name})
		}
		lineup = append(lineup, l)
	}
	if len(lineup) == 0 {
		lineup = defaultLineup()
	}

	s := &State{
		volume: 50,
		lineup: lineup,
	}
	if len(lineup[0].Services) > 0 {
		s.current = lineup[0].Services[0]
	}
	return s
}

func defaultLineup() []Lineup {
	return []Lineup{
		{
			Bouquet: types.Bouquet{
				Ref:  "1:7:1:0:0:0:0:0:0:0:FROM BOUQUET \"userbouquet.favourites.tv\" ORDER BY bouquet",
				Name: "Favourites (TV)",
			},
			Services: []types.Service{
				{Ref: "1:0:19:283D:3FB:1:C00000:0:0:0:", Name: "Das Erste HD"},
				{Ref: "1:0:19:2855:3F8:1:C00000:0:0:0:", Name: "ZDF HD"},
				{Ref: "1:0:19:2887:40F:1:C00000:0:0:0:", Name: "RTÉ One"},
			},
		},
	}
}

// Bouquets returns the lineup's bouquets in order.
func (s *State) Bouquets() []types.Bouquet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Bouquet, 0, len(s.lineup))
	for _, l := range s.lineup {
		out = append(out, l.Bouquet)
	}
	return out
}

// ServiceGroups returns the full lineup as /api/getallservices groups.
func (s *State) ServiceGroups() []types.ServiceGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ServiceGroup, 0, len(s.lineup))
	for _, l := range s.lineup {
		out = append(out, types.ServiceGroup{
			Ref:      l.Bouquet.Ref,
			Name:     l.Bouquet.Name,
			Services: append([]types.Service(nil), l.Services...),
		})
	}
	return out
}

// Services returns the services of the bouquet with the given ref, or nil
// when the bouquet is unknown.
func (s *State) Services(bouquetRef string) []types.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lineup {
		if l.Bouquet.Ref == bouquetRef {
			return append([]types.Service(nil), l.Services...)
		}
	}
	return nil
}

// StatusInfo snapshots the state in the /api/statusinfo wire shape.
func (s *State) StatusInfo() types.StatusInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := types.StatusInfo{
		Result:    true,
		InStandby: "false",
		Volume:    s.volume,
		Muted:     s.muted,
	}
	if s.standby {
		info.InStandby = "true"
		return info
	}
	info.Station = s.current.Name
	info.ServiceRef = s.current.Ref
	info.EventTitle = nowPlayingTitle(s.current)
	return info
}

// Zap tunes to the given service ref. Unknown refs fail like a real box.
func (s *State) Zap(serviceRef string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lineup {
		for _, svc := range l.Services {
			if svc.Ref == serviceRef {
				s.current = svc
				s.standby = false
				return true
			}
		}
	}
	return false
}

// Step moves the tuned service within its bouquet, wrapping at the ends.
func (s *State) Step(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lineup {
		for i, svc := range l.Services {
			if svc.Ref == s.current.Ref {
				n := len(l.Services)
				s.current = l.Services[((i+delta)%n+n)%n]
				return true
			}
		}
	}
	return false
}

// SetPowerstate applies a /api/powerstate newstate argument and returns
// whether the box is in standby afterwards.
func (s *State) SetPowerstate(newstate string) (standby bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch newstate {
	case "0": // toggle standby
		s.standby = !s.standby
	case "1", "5": // deep standby behaves like standby here
		s.standby = true
	case "4": // wakeup
		s.standby = false
	default:
		return s.standby, false
	}
	return s.standby, true
}

// SetVolume clamps and stores the volume.
func (s *State) SetVolume(level int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	s.volume = level
	return s.volume
}

// ToggleMute flips the mute flag and returns the new value.
func (s *State) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	return s.muted
}

// Volume returns volume and mute state.
func (s *State) Volume() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume, s.muted
}

// Current returns the tuned service.
func (s *State) Current() types.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func nowPlayingTitle(svc types.Service) string {
	return fmt.Sprintf("Now on %s", svc.Name)
}
