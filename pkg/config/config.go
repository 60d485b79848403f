package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML config file.
type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`
	Ops struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"ops"`
	Storage struct {
		// Driver selects the user store: "memory" (default) or "pebble".
		Driver string `yaml:"driver"`
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	Assets struct {
		Root string `yaml:"root"`
	} `yaml:"assets"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text|json
		Access struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"access"`
	} `yaml:"logging"`
	Limits struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"limits"`
	Rotation struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"rotation"`
}

// Addr returns host:port for the data-plane listener.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// OpsAddr returns host:port for the ops listener.
func (c *Config) OpsAddr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Ops.Port
	if p == 0 {
		p = 9090
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// Load parses the YAML config at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseCommandFlags defines and parses command-line flags and returns their
// values along with a map indicating which flags were explicitly set.
func ParseCommandFlags() (addr, dbPath, staticRoot, cfgPath string, setFlags map[string]bool) {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	staticPtr := flag.String("static", "./static", "Static assets root")
	cfgPtr := flag.String("config", "./config.yaml", "Path to config file")
	flag.Parse()
	setFlags = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return *addrPtr, *dbPtr, *staticPtr, *cfgPtr, setFlags
}
