package types

// CommandResult is the generic acknowledgement payload the box returns for
// powerstate, remote-control, volume and zap requests.
type CommandResult struct {
	Result  bool   `json:"result"`
	Message string `json:"message,omitempty"`
}

// VolumeResult is the /api/vol payload.
type VolumeResult struct {
	Result  bool `json:"result"`
	Current int  `json:"current"`
	IsMute  bool `json:"ismute"`
}
