package cmd

import (
	"fmt"

	"pulse/internal/config"
	"pulse/internal/logging"
	"pulse/server"
)

// ServerCmd starts the SSH server
type ServerCmd struct {
	Host string `help:"Host to bind to" default:""`
	Port string `help:"Port to listen on" default:""`
}

// Run executes the server command
func (s *ServerCmd) Run(cli *CLI) error {
	host := s.Host
	port := s.Port
	if cli.settings != nil {
		if host == "" {
			host = cli.settings.ServerHost
		}
		if port == "" {
			port = cli.settings.ServerPort
		}
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = config.DefaultServerPort
	}

	logging.Logger.Info("Starting pulse SSH server",
		"host", host,
		"port", port)

	srv, err := server.NewServer(host, port, config.GetDBPath(), cli.settings)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Blocks until shutdown
	return srv.Start()
}
