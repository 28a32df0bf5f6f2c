package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/ninja-arena/internal/config"
	"github.com/ericogr/ninja-arena/internal/constants"
)

// listenAddr mirrors the server: NINJA_ADDR wins, otherwise the config
// file's server.address.
func listenAddr(env config.Env) (string, error) {
	if env.Addr != "" {
		return env.Addr, nil
	}
	cfg, err := config.LoadConfig(env.ConfigPath)
	if err != nil {
		return "", err
	}
	return cfg.ServerAddress, nil
}

// probeURL targets the version route on the configured address, falling
// back to the default port.
func probeURL(addr string) string {
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr + constants.RouteAPIPrefix + constants.RouteVersion
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		os.Exit(1)
	}
	addr, err := listenAddr(env)
	if err != nil {
		os.Exit(1)
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(probeURL(addr))
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
