package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/config"
	"kycportal/internal/logger"
)

const usage = "Usage: migrate [up|down|steps N|version|force V]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	m, err := migrate.New("file://db/migrations", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	cmd := os.Args[1]
	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Info("migrations applied successfully")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Info("migrations reverted successfully")

	case "steps":
		n := intArg("steps")
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migration steps failed: %v", err)
		}
		log.Infof("applied %d migration steps", n)

	case "force":
		v := intArg("force")
		if err := m.Force(v); err != nil {
			log.Fatalf("force version failed: %v", err)
		}
		log.Infof("forced version %d", v)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func intArg(cmd string) int {
	if len(os.Args) < 3 {
		log.Fatalf("%s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("invalid %s argument: %v", cmd, err)
	}
	return n
}
