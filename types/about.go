package types

// Iface is one network interface reported by /api/about. The MAC of the
// first eth interface is what wake-on-LAN needs.
type Iface struct {
	Name string `json:"name"`
	MAC  string `json:"mac"`
	IP   string `json:"ip"`
}

// AboutInfo carries the box metadata we care about from /api/about.
type AboutInfo struct {
	WebifVersion string  `json:"webifver"`
	ImageDistro  string  `json:"imagedistro"`
	BrandModel   string  `json:"brand"`
	BoxType      string  `json:"boxtype"`
	Ifaces       []Iface `json:"ifaces"`
}

// About is the /api/about payload.
type About struct {
	Info AboutInfo `json:"info"`
}
