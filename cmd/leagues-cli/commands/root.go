package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"tennisleagues/lib/leagues"
	"tennisleagues/lib/restyutil"
	"tennisleagues/lib/telemetry"
	"tennisleagues/lib/util/serviceutil"
	"tennisleagues/lib/webpage"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand, populated before they run.
type app struct {
	configPath string
	baseUrl    string
	dumpDir    string
	verbose    bool

	cfg  Config
	base *url.URL
	http *resty.Client
	tel  telemetry.Telemetry
}

func (a *app) setup(cmd *cobra.Command) error {
	telemetry.InitSlog(cmd.ErrOrStderr(), a.verbose)

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if a.baseUrl != "" {
		cfg.BaseUrl = a.baseUrl
	}
	a.cfg = cfg

	a.base, err = url.Parse(cfg.BaseUrl)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}

	a.tel, err = telemetry.Setup(cmd.Context(), "leagues-cli", cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}

	var output restyutil.InstrumentOutput
	if a.dumpDir != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(a.dumpDir)
		if err != nil {
			return err
		}
		slog.Info("recording http transcripts", "dir", fsOutput.Dir())
		output = fsOutput
	}

	a.http = restyutil.NewClient(restyutil.ClientOptions{
		BaseUrl:    cfg.BaseUrl,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout(),
		TracerName: "leagues-cli/http",
		Output:     output,

		CloudflareBypass: cfg.CloudflareBypass,
	})

	slog.Debug("configured", "base_url", cfg.BaseUrl, "timeout", cfg.Timeout())
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	return a.tel.Shutdown(ctx)
}

func (a *app) leaguesClient() (*leagues.Client, error) {
	return leagues.NewClient(leagues.ClientOptions{
		BaseUrl: a.cfg.BaseUrl,
		Http:    a.http,
	})
}

func (a *app) loader() *webpage.Loader {
	return webpage.NewLoader(a.http, a.base)
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "leagues-cli",
		Short:         "leagues-cli browses tennis league tables and submits the site's JSON forms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath, "Path to the json5 config file.")
	flags.StringVar(&a.baseUrl, "base-url", "", "Base URL of the league site, overrides the config.")
	flags.StringVar(&a.dumpDir, "dump-dir", "", "Write a transcript of every HTTP exchange to this directory.")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging.")

	rootCmd.AddCommand(
		newLeaguesCmd(a),
		newTableCmd(a),
		newRenderCmd(a),
		newBrowseCmd(a),
		newSubmitCmd(a),
	)
	return rootCmd
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		serviceutil.Fatal("leagues-cli failed", err)
	}
}
