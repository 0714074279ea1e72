package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// SimService is one channel of a simulated bouquet.
type SimService struct {
	Name string `yaml:"name"`
	Ref  string `yaml:"ref"`
}

// SimBouquet is one bouquet of the simulated lineup.
type SimBouquet struct {
	Name     string       `yaml:"name"`
	Ref      string       `yaml:"ref"`
	Services []SimService `yaml:"services"`
}

// AppConfig is the yaml config read by the CLI. Every field can be
// overridden by a flag.
type AppConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	UseHTTPS    bool   `yaml:"use_https"`
	PreferPicon bool   `yaml:"prefer_picon"`
	MACAddress  string `yaml:"mac_address"`
	DeepStandby bool   `yaml:"deep_standby"`

	// Simulated device lineup, used by -simulate.
	Bouquets []SimBouquet `yaml:"bouquets"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: 80,
	}
}

// LoadConfig reads the yaml config at path. A missing file at the default
// path is not an error; an explicitly requested file must exist.
func LoadConfig(path string) (AppConfig, error) {
	cfg := defaultAppConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %v", path, err)
	}
	if cfg.Port == 0 {
		cfg.Port = 80
	}
	return cfg, nil
}
