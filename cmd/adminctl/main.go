// Command adminctl drives the mall4r back-office from the command line
// through the admin client library.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Darkingtail/mall4r/internal/adminclient"
	"github.com/Darkingtail/mall4r/internal/infrastructure/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Version is set at build time
var Version = "dev"

// runtime is the state shared by every command of one invocation
type runtime struct {
	cfg    *Config
	log    *zap.Logger
	client *adminclient.Client
	api    *adminclient.API
	out    io.Writer
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	rt := &runtime{out: out}

	return &cli.App{
		Name:    "adminctl",
		Usage:   "manage the mall4r back-office",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to adminctl.toml"},
			&cli.StringFlag{Name: "url", Usage: "admin API base URL"},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "operator name used by login"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "operator password used by login"},
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)"},
		},
		Before: rt.setup,
		After: func(*cli.Context) error {
			if rt.log != nil {
				_ = logger.Sync(rt.log)
			}
			return nil
		},
		Commands: rt.commands(),
	}
}

// setup loads the config, applies flag overrides and builds the client
// with the saved session
func (rt *runtime) setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("url") {
		cfg.BaseURL = c.String("url")
	}
	if c.IsSet("username") {
		cfg.Username = c.String("username")
	}
	if c.IsSet("password") {
		cfg.Password = c.String("password")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	rt.cfg = cfg

	log, err := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	rt.log = log

	sess, err := readSession(cfg.TokenFile)
	if err != nil {
		return err
	}
	opts := []adminclient.ClientOption{
		adminclient.WithLogger(log),
		adminclient.WithTimeout(cfg.Timeout),
	}
	// a session saved for another server is ignored
	if sess.BaseURL == cfg.BaseURL {
		opts = append(opts,
			adminclient.WithToken(sess.AccessToken),
			adminclient.WithRefreshToken(sess.RefreshToken),
		)
	}
	client, err := adminclient.New(cfg.BaseURL, opts...)
	if err != nil {
		return err
	}
	rt.client = client
	rt.api = adminclient.NewAPI(client)
	return nil
}

// saveSession persists the tokens the client currently holds
func (rt *runtime) saveSession() error {
	access, refresh := rt.client.Tokens()
	return writeSession(rt.cfg.TokenFile, session{
		BaseURL:      rt.cfg.BaseURL,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
