package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/lunatic-fringers/wg-bridge/internal/application"
	"github.com/lunatic-fringers/wg-bridge/internal/config"
	"github.com/lunatic-fringers/wg-bridge/internal/logging"
)

var osExit = os.Exit

func main() {
	osExit(run(os.Args[1:]))
}

func run(args []string) int {
	kingpinApp := kingpin.New("wg-bridge", "Manages WireGuard bridge configurations")
	configPath := kingpinApp.Flag("config", "Path to the TOML configuration file").String()
	logDir := kingpinApp.Flag("log-dir", "Directory where daily log files are written").Default(".").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "wg-bridge: %v\n", err)
		return 1
	}

	diag, err := logging.NewConsole()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wg-bridge: failed to initialize diagnostics logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = diag.Sync()
	}()

	app, err := application.New(application.Options{
		ConfigPath: config.ResolvePath(*configPath),
		LogDir:     *logDir,
	}, diag)
	if err != nil {
		diag.Error("startup failed", zap.Error(err))
		return 1
	}

	app.Log.Info(fmt.Sprintf("wg-bridge %s ready", app.Config.Version))

	_ = app.Close()
	return 0
}
