// Command rbacstatus prints accounts, quota counters, recent audit entries,
// sessions and attribution records.
//
// Without -server it opens the database named by the usual configuration
// sources (.env, environment, JSON file) or by -d. With -server it logs in
// to a running accessd and needs an admin account. With -watch the report
// is shown full-screen and refreshed on the given interval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/adapter"
	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/status"
	"github.com/MKhiriev/crimewatch-access/internal/store"
)

const passwordEnv = "RBACSTATUS_PASSWORD"

type options struct {
	driver   string
	dsn      string
	server   string
	username string
	password string
	timeout  time.Duration
	watch    time.Duration
	logLevel string
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	log := logger.NewLoggerTo(os.Stderr, "rbacstatus").WithLevel(opts.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error().Err(err).Msg("status report failed")
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("rbacstatus", flag.ContinueOnError)
	fs.StringVar(&opts.driver, "driver", "", "Database driver (sqlite3, postgres)")
	fs.StringVar(&opts.dsn, "d", "", "Database DSN")
	fs.StringVar(&opts.server, "server", "", "Address of a running accessd (remote mode)")
	fs.StringVar(&opts.username, "u", "admin", "Username for remote mode")
	fs.StringVar(&opts.password, "p", "", "Password for remote mode (or "+passwordEnv+")")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout in remote mode")
	fs.DurationVar(&opts.watch, "watch", 0, "Refresh interval of the full-screen view; 0 prints once")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.password == "" {
		opts.password = os.Getenv(passwordEnv)
	}

	return opts, nil
}

func run(ctx context.Context, opts options, log *logger.Logger) error {
	var (
		src     status.Source
		cleanup = func() {}
	)

	if opts.server != "" {
		s, logout, err := remoteSource(ctx, opts, log)
		if err != nil {
			return err
		}
		src, cleanup = s, logout
	} else {
		s, closeDB, err := localSource(ctx, opts, log)
		if err != nil {
			return err
		}
		src, cleanup = s, closeDB
	}
	defer cleanup()

	if opts.watch > 0 {
		return status.Watch(ctx, src, opts.watch)
	}

	report, err := status.Collect(ctx, src, time.Now())
	if err != nil {
		return err
	}

	return status.Render(os.Stdout, report)
}

func localSource(ctx context.Context, opts options, log *logger.Logger) (status.Source, func(), error) {
	cfg, err := config.GetStructuredConfig(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}

	dbCfg := cfg.Storage.DB
	if opts.driver != "" {
		dbCfg.Driver = opts.driver
	}
	if opts.dsn != "" {
		dbCfg.DSN = opts.dsn
	}

	// an absent sqlite file would be created empty by the driver
	if dbCfg.Driver == config.DefaultDriver && !strings.HasPrefix(dbCfg.DSN, "file:") {
		if _, err := os.Stat(dbCfg.DSN); err != nil {
			return nil, nil, fmt.Errorf("database %q: %w", dbCfg.DSN, err)
		}
	}

	db, err := store.NewConnect(ctx, dbCfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return status.NewStoreSource(db.Repositories()), func() { db.Close() }, nil
}

// remoteSource logs in; the returned func closes the session again.
func remoteSource(ctx context.Context, opts options, log *logger.Logger) (status.Source, func(), error) {
	client, err := adapter.NewHTTPAccessClient(opts.server, opts.timeout, log)
	if err != nil {
		return nil, nil, err
	}

	if _, err := client.Login(ctx, opts.username, opts.password); err != nil {
		return nil, nil, fmt.Errorf("login as %q: %w", opts.username, err)
	}

	logout := func() {
		if _, err := client.Logout(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close the status session")
		}
	}

	if version, err := client.Version(ctx); err == nil {
		log.Info().Str("version", version).Msg("connected to accessd")
	}

	return status.NewRemoteSource(client), logout, nil
}
