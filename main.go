package main

import (
	"github.com/ml8/counter-queue/pkg/config"
	"github.com/ml8/counter-queue/pkg/queue"
	"github.com/ml8/counter-queue/pkg/server"
	"github.com/ml8/counter-queue/pkg/service"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

// Flags
var (
	configPath    string
	addr          string
	oauth         string
	adminChannel  string
	signingSecret string
	slashCommands bool
)

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the counter HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			override(cmd.Flags(), cfg)
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVarP(&addr, "addr", "p", "", "Address to listen on (default :3000)")
	cmd.Flags().StringVar(&oauth, "slack-token", "", "Slack OAuth token; enables announcements")
	cmd.Flags().StringVar(&adminChannel, "slack-channel", "", "Slack channel receiving counter announcements")
	cmd.Flags().StringVar(&signingSecret, "slack-signing-secret", "", "Slack application signing secret")
	cmd.Flags().BoolVar(&slashCommands, "slash", false, "Serve the Slack /slash and /actions endpoints")
	return cmd
}

// Flags given on the command line win over the config file.
func override(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("addr") {
		cfg.HTTP.Addr = addr
	}
	if flags.Changed("slack-token") {
		cfg.Slack.Token = oauth
	}
	if flags.Changed("slack-channel") {
		cfg.Slack.Channel = adminChannel
	}
	if flags.Changed("slack-signing-secret") {
		cfg.Slack.SigningSecret = signingSecret
	}
	if flags.Changed("slash") {
		cfg.Slack.Commands = slashCommands
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	var announcer service.Announcer = service.LogAnnouncer{}
	if cfg.SlackEnabled() && cfg.Slack.Channel != "" {
		glog.Infof("Announcing to Slack channel %v", cfg.Slack.Channel)
		announcer = service.MakeSlackAnnouncer(slack.New(cfg.Slack.Token), cfg.Slack.Channel)
	}

	// The single queue for this process.
	m := queue.MakeManager()
	s := service.TS(m, announcer)
	srv := server.CreateServer(s, server.Options{
		SlashCommands: cfg.Slack.Commands,
		SigningSecret: cfg.Slack.SigningSecret,
	})

	err := srv.Serve(ctx, cfg.HTTP.Addr)
	return errors.Wrap(err, "serve")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flag.Set("logtostderr", "true")
	root := &cobra.Command{
		Use:          "counterq",
		Short:        "Priority service counter",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// glog reads the stdlib flag set, which cobra has already filled in.
			flag.CommandLine.Parse(nil)
		},
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(serveCommand())

	if err := root.ExecuteContext(ctx); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
