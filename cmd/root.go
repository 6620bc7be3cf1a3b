// Package cmd implements the command-line interface for topiccrawl.
// It provides the root command and the subcommands driving the two pipeline
// stages: structure extraction and sharded batch crawling.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	batchcmd "github.com/topiccrawl/topiccrawl/cmd/batch"
	crawlcmd "github.com/topiccrawl/topiccrawl/cmd/crawl"
	structurecmd "github.com/topiccrawl/topiccrawl/cmd/structure"
	"github.com/topiccrawl/topiccrawl/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands
	debug bool

	// rootCmd represents the root command for the topiccrawl CLI.
	rootCmd = &cobra.Command{
		Use:   "topiccrawl",
		Short: "A sharded topic-structure crawl pipeline",
		Long: `topiccrawl extracts a catalog site's topic structure into a JSON
artifact and crawls it in independent, deterministic shards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get the config path and debug flag before
	// initializing Viper
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("topiccrawl version %s\n", version)
		},
	})

	rootCmd.AddCommand(structurecmd.Command())
	rootCmd.AddCommand(batchcmd.Command())
	rootCmd.AddCommand(crawlcmd.Command())
}

// initConfig reads in the config file and environment variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// Config file is optional: defaults plus environment variables are a
	// complete configuration
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":    {"APP_ENV"},
		"app.debug":          {"APP_DEBUG"},
		"logger.level":       {"LOG_LEVEL"},
		"logger.encoding":    {"LOG_FORMAT"},
		"site.base_url":      {"SITE_BASE_URL"},
		"crawler.user_agent": {"CRAWLER_USER_AGENT"},
		"crawler.proxy_urls": {"CRAWLER_PROXY_URLS", "PROXY_URLS", "PROXY_SERVER"},
	}
	for key, envs := range bindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// setupDevelopmentLogging configures logging based on environment and the
// debug flag.
func setupDevelopmentLogging() {
	debugFlag := debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.enable_color", true)
		viper.Set("logger.encoding", "console")
	}

	debug = debugFlag
}
