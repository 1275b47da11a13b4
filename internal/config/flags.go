package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the configuration flags out of args (os.Args[1:] in
// production).
//
// Flags:
//
//	-a               HTTP address in format [host]:[port]
//	-d               database DSN
//	-driver          database driver: sqlite3 or postgres
//	-c/-config       JSON file path with configs
//	-tz              time zone for the quota day, e.g. Africa/Harare
//	-password-scheme argon2id, bcrypt or sha256
//	-seed            seed the default users
//	-token-sign-key  token signing key
//	-token-issuer    token issuer name
//	-token-duration  token duration (e.g. "8h")
//	-request-timeout request timeout (e.g. "30s")
//	-log-level       log level
//	-reap            enable the stale session reaper
//	-retention       enable audit retention
//	-worker-interval interval of the enabled workers
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(programName(), flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, driver string
	var jsonConfigPath string
	var timezone, passwordScheme, logLevel string
	var seed, reap, retention bool
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, workerInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&driver, "driver", "", "Database driver (sqlite3, postgres)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&timezone, "tz", "", "Time zone of the quota day")
	fs.StringVar(&passwordScheme, "password-scheme", "", "Password hash scheme (argon2id, bcrypt, sha256)")
	fs.BoolVar(&seed, "seed", false, "Seed default users")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 8h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.BoolVar(&reap, "reap", false, "Close stale sessions in the background")
	fs.BoolVar(&retention, "retention", false, "Purge expired audit entries in the background")
	fs.DurationVar(&workerInterval, "worker-interval", 0, "Background worker interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel:         logLevel,
			Timezone:         timezone,
			PasswordScheme:   passwordScheme,
			SeedDefaultUsers: seed,
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			Interval:          workerInterval,
			ReapStaleSessions: reap,
			EnforceRetention:  retention,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func programName() string {
	if len(os.Args) == 0 {
		return "accessd"
	}
	return os.Args[0]
}

// String returns host:port, or "" when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. Hosts other than "localhost" must be IP literals.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if net.ParseIP(host) == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
