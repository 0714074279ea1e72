package tool

import "flag"

// Config holds runtime overrides from CLI flags.
type Config struct {
	Log           string
	UseConfigPath string

	Host     string
	Port     int
	UseHTTPS bool
	Username string
	Password string

	Command    string
	ServiceRef string
	Bouquet    string
	Volume     int
	ShowQR     bool

	Simulate bool
	SimPort  int
}

// SetFlags parses CLI flags and returns the override config.
func SetFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "config", "", "override config file path")
	flag.StringVar(&cfg.Host, "host", "", "box hostname or IP")
	flag.IntVar(&cfg.Port, "port", 0, "OpenWebif port (default 80)")
	flag.BoolVar(&cfg.UseHTTPS, "https", false, "use https")
	flag.StringVar(&cfg.Username, "user", "", "basic auth user")
	flag.StringVar(&cfg.Password, "pass", "", "basic auth password")
	flag.StringVar(&cfg.Command, "cmd", "status",
		"command: status|about|standby|on|off|playpause|stop|up|down|mute|volume|zap|bouquets|sources|picon")
	flag.StringVar(&cfg.ServiceRef, "sref", "", "service reference for -cmd zap")
	flag.StringVar(&cfg.Bouquet, "bouquet", "", "bouquet reference for -cmd sources")
	flag.IntVar(&cfg.Volume, "volume", -1, "volume level for -cmd volume (0-100)")
	flag.BoolVar(&cfg.ShowQR, "qr", false, "print a QR code of the box web UI URL")
	flag.BoolVar(&cfg.Simulate, "simulate", false, "run a fake OpenWebif device instead of a command")
	flag.IntVar(&cfg.SimPort, "simPort", 8088, "port for -simulate")
	flag.Parse()
	return cfg
}
