// Command ideactl is a terminal client for the ideas service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgKeyServer  = "server"
	cfgKeyUser    = "user"
	cfgKeyTimeout = "timeout"
)

var (
	cfg        = viper.New()
	jsonOutput bool
	api        *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "ideactl",
	Short: "Analyze YouTube videos for business ideas and manage saved ideas",
	Long: `ideactl talks to a running ideas server.

Settings come from flags, IDEACTL_* environment variables or an ideactl.yaml
file in the current directory or $HOME/.config/ideactl.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		api = client.New(cfg.GetString(cfgKeyServer), &http.Client{Timeout: cfg.GetDuration(cfgKeyTimeout)})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String(cfgKeyServer, "http://localhost:8080", "ideas server base URL")
	rootCmd.PersistentFlags().String(cfgKeyUser, "", "user id that owns the ideas")
	rootCmd.PersistentFlags().Duration(cfgKeyTimeout, 5*time.Minute, "request timeout (analysis can take minutes)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	for _, key := range []string{cfgKeyServer, cfgKeyUser, cfgKeyTimeout} {
		_ = cfg.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(exportCmd)
}

func loadConfig() error {
	cfg.SetConfigName("ideactl")
	cfg.SetConfigType("yaml")
	cfg.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		cfg.AddConfigPath(home + "/.config/ideactl")
	}

	cfg.SetEnvPrefix("ideactl")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// requireUser returns the configured user id or an error naming the flag.
func requireUser() (string, error) {
	user := cfg.GetString(cfgKeyUser)
	if user == "" {
		return "", fmt.Errorf("--user (or IDEACTL_USER) is required")
	}
	return user, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
