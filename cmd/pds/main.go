package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/MKhiriev/go-pds/internal/adapter"
	"github.com/MKhiriev/go-pds/internal/config"
	"github.com/MKhiriev/go-pds/internal/handler"
	"github.com/MKhiriev/go-pds/internal/lexicon/tools/ozone/signature"
	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/server"
	"github.com/MKhiriev/go-pds/internal/service"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	app := kingpin.New("pds", "atproto personal data server")
	app.Version(buildVersion)

	serveCmd := app.Command("serve", "Run the PDS server").Default()
	envFile := serveCmd.Flag("env-file", "Path to a dotenv file read under the process environment").String()
	logLevel := serveCmd.Flag("log-level", "Log level (debug, info, warn, error); debug in debug mode, info otherwise").String()
	plcTimeout := serveCmd.Flag("plc-timeout", "Timeout of PLC directory requests").Default("10s").Duration()

	correlationCmd := app.Command("find-correlation", "Ask an ozone service which signature properties the given accounts share")
	serviceURL := correlationCmd.Flag("service", "Base URL of the ozone service").Required().URL()
	dids := correlationCmd.Flag("did", "DID to correlate (repeatable)").Required().Strings()
	timeout := correlationCmd.Flag("timeout", "Request timeout").Default("10s").Duration()

	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case serveCmd.FullCommand():
		serve(*envFile, *logLevel, *plcTimeout)
	case correlationCmd.FullCommand():
		log := logger.NewLogger("pds-cli")
		if err := findCorrelation(os.Stdout, (*serviceURL).String(), *dids, *timeout, log); err != nil {
			log.Fatal().Err(err).Msg("find correlation failed")
		}
	}
}

func serve(envFile, logLevel string, plcTimeout time.Duration) {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(os.Stdout, buildInfo)

	log := logger.NewLogger("pds")

	cfg, err := loadConfig(envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(levelFor(cfg, logLevel)); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	log.Debug().Object("config", cfg).Msg("received configs")

	if keys := cfg.InsecureDefaults(); len(keys) > 0 && !cfg.DebugMode() {
		log.Warn().Strs("keys", keys).Msg("secrets are left at their development defaults")
	}

	storages, err := store.NewStorages(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	plc, err := adapter.NewPLCClient(cfg, plcTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating PLC client")
	}

	mailSender, err := service.NewMailSender(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}

	services, err := service.NewServices(storages, plc, mailSender, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// loadConfig resolves the server configuration from the process
// environment, with envFile (if any) filling in the keys it does not set.
func loadConfig(envFile string) (*config.ServerConfig, error) {
	if envFile == "" {
		return config.ReadProcessEnv(nil)
	}

	environment, err := config.LoadDotEnv(envFile, config.ProcessEnv())
	if err != nil {
		return nil, err
	}
	return config.ReadEnv(environment, nil)
}

// levelFor returns the explicit log level or the default of the mode.
func levelFor(cfg *config.ServerConfig, explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case cfg.DebugMode():
		return "debug"
	}
	return "info"
}

func findCorrelation(w io.Writer, serviceURL string, dids []string, timeout time.Duration, log *logger.Logger) error {
	client, err := adapter.NewXRPCClient(serviceURL, timeout, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.FindCorrelation(ctx, signature.FindCorrelationQueryParams{DIDs: dids}, signature.FindCorrelationCallOptions{})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Data)
}

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())
}
