// srpdemo drives a full SRP-6a registration and authentication exchange
// using the srp package and prints the hex values exchanged at each
// step. It has no network transport of its own: it simulates both
// parties in a single process to demonstrate the handshake.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/srp6a/srp"
	"github.com/srp6a/srp/internal/config"
	"github.com/srp6a/srp/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a srpdemo YAML config file (optional; built-in defaults are used otherwise)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger := logging.New(logging.LevelError, logging.FormatJSON)
		logger.Error("srpdemo failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
	}

	logger := logging.New(logging.Level(cfg.Logging.Level), logging.Format(cfg.Logging.Format))

	group, err := srp.GroupFromValue(cfg.Group)
	if err != nil {
		return fmt.Errorf("resolving group: %w", err)
	}

	username, password := cfg.Identity.Username, cfg.Identity.Password
	logger.Info("starting registration", map[string]any{"username": username, "group": cfg.Group})

	// Registration: the client computes a verifier and hands it (and a
	// salt) to the server. The password never leaves the client.
	salt := srp.GenerateSalt()
	x, err := srp.DerivePrivateKey(salt, username, password)
	if err != nil {
		return fmt.Errorf("deriving private key: %w", err)
	}
	verifier, err := srp.DeriveVerifierWithGroup(x, group)
	if err != nil {
		return fmt.Errorf("deriving verifier: %w", err)
	}
	logger.Info("registered", map[string]any{"salt": salt, "verifier": verifier})

	client, err := srp.NewClient(group)
	if err != nil {
		return fmt.Errorf("constructing client: %w", err)
	}
	server, err := srp.NewServer(group)
	if err != nil {
		return fmt.Errorf("constructing server: %w", err)
	}

	clientEph, err := client.GenerateEphemeral()
	if err != nil {
		return fmt.Errorf("generating client ephemeral: %w", err)
	}
	serverEph, err := server.GenerateEphemeral(verifier)
	if err != nil {
		return fmt.Errorf("generating server ephemeral: %w", err)
	}
	logger.Info("exchanged ephemerals", map[string]any{"A": clientEph.Public, "B": serverEph.Public})

	clientSess, err := client.DeriveSession(serverEph.Public, salt, username, x)
	if err != nil {
		return fmt.Errorf("deriving client session: %w", err)
	}

	serverSess, err := server.DeriveSession(clientEph.Public, salt, username, verifier, clientSess.Proof)
	if err != nil {
		return fmt.Errorf("server rejected client proof: %w", err)
	}

	if err := client.VerifySession(serverSess.Proof); err != nil {
		return fmt.Errorf("client rejected server proof: %w", err)
	}

	logger.Info("handshake complete", map[string]any{
		"shared_key_matches": clientSess.Key == serverSess.Key,
	})
	fmt.Printf("shared session key: %s\n", clientSess.Key)

	return nil
}
