package types

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Bouquet is a named, ordered channel group configured on the box.
// The /api/bouquets endpoint sends each bouquet as a two-element array
// ["<service ref>", "<name>"], so decoding needs a custom unmarshaler.
type Bouquet struct {
	Ref  string
	Name string
}

func (b *Bouquet) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("bouquet entry has %d elements, want 2", len(pair))
	}
	b.Ref = pair[0]
	b.Name = pair[1]
	return nil
}

func (b Bouquet) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([]string{b.Ref, b.Name})
}

// BouquetsResponse is the /api/bouquets payload.
type BouquetsResponse struct {
	Bouquets []Bouquet `json:"bouquets"`
}

// Service is a single zappable channel.
type Service struct {
	Ref  string `json:"servicereference"`
	Name string `json:"servicename"`
}

// ServiceGroup is one bouquet with its member services, as returned by
// /api/getallservices.
type ServiceGroup struct {
	Ref      string    `json:"servicereference"`
	Name     string    `json:"servicename"`
	Services []Service `json:"subservices"`
}

// AllServicesResponse is the /api/getallservices payload.
type AllServicesResponse struct {
	Result   bool           `json:"result"`
	Services []ServiceGroup `json:"services"`
}

// EPGEvent is one entry of /api/epgnow: the programme running now on a
// service of the queried bouquet.
type EPGEvent struct {
	ServiceName string `json:"sname"`
	ServiceRef  string `json:"sref"`
	Title       string `json:"title"`
	Begin       int64  `json:"begin_timestamp"`
	Duration    int64  `json:"duration_sec"`
}

// EPGNowResponse is the /api/epgnow payload.
type EPGNowResponse struct {
	Result bool       `json:"result"`
	Events []EPGEvent `json:"events"`
}
