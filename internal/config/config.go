package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

type Server struct {
	Port int `yaml:"port"`
}

type DB struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"database"`
}

type MQ struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
}

type Loyalty struct {
	WeekendMultiplier int `yaml:"weekend_multiplier"`
}

type App struct {
	Server   Server  `yaml:"server"`
	Database DB      `yaml:"database"`
	Rabbit   MQ      `yaml:"rabbitmq"`
	Loyalty  Loyalty `yaml:"loyalty"`
}

// Load parses a two-level YAML file without external packages: top-level
// section names followed by indented key: value pairs.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, err
	}
	a := App{Loyalty: Loyalty{WeekendMultiplier: 2}}
	var cur string
	for _, ln := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(ln)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			cur = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		switch cur {
		case "server":
			if k == "port" {
				a.Server.Port = atoiSafe(v)
			}
		case "database":
			assignDB(&a.Database, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "loyalty":
			if k == "weekend_multiplier" {
				a.Loyalty.WeekendMultiplier = atoiSafe(v)
			}
		}
	}
	if a.Database.Host == "" || a.Rabbit.Host == "" {
		return App{}, errors.New("invalid config: missing database/rabbitmq host")
	}
	if a.Server.Port == 0 {
		a.Server.Port = 3000
	}
	if a.Loyalty.WeekendMultiplier <= 0 {
		a.Loyalty.WeekendMultiplier = 2
	}
	return a, nil
}

func assignDB(d *DB, k, v string) {
	switch k {
	case "host":
		d.Host = v
	case "port":
		d.Port = atoiSafe(v)
	case "user":
		d.User = v
	case "password":
		d.Pass = v
	case "database":
		d.Name = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoiSafe(v)
	case "user":
		m.User = v
	case "password":
		m.Pass = v
	}
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// FindConfig probes the conventional locations for a config file.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
