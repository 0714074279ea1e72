package types

import "strings"

// PlaybackType classifies what the box is currently tuned to.
type PlaybackType int

const (
	PlaybackNone PlaybackType = iota
	PlaybackLive
	PlaybackRecording
)

func (p PlaybackType) String() string {
	switch p {
	case PlaybackLive:
		return "live"
	case PlaybackRecording:
		return "recording"
	default:
		return "none"
	}
}

// Service refs of recording playback start with this prefix instead of a
// live DVB namespace.
const recordingRefPrefix = "1:0:0"

// StatusInfo is the decoded /api/statusinfo payload. It is a snapshot:
// every query fetches a fresh one, nothing is cached between calls.
//
// Field naming follows the OpenWebif wire format: currservice_name is the
// running programme title, currservice_station is the channel name.
type StatusInfo struct {
	Result      bool   `json:"result"`
	InStandby   string `json:"inStandby"`
	EventTitle  string `json:"currservice_name"`
	Station     string `json:"currservice_station"`
	ServiceRef  string `json:"currservice_serviceref"`
	Begin       string `json:"currservice_begin"`
	End         string `json:"currservice_end"`
	Description string `json:"currservice_description"`
	Volume      int    `json:"volume"`
	Muted       bool   `json:"muted"`
}

// Standby reports whether the box is in standby. The firmware sends the
// flag as the string "true"/"false", not a JSON bool.
func (s StatusInfo) Standby() bool {
	return s.InStandby == "true"
}

// Playback derives the playback type from the current service reference.
func (s StatusInfo) Playback() PlaybackType {
	if s.ServiceRef == "" {
		return PlaybackNone
	}
	if strings.HasPrefix(s.ServiceRef, recordingRefPrefix) {
		return PlaybackRecording
	}
	return PlaybackLive
}
