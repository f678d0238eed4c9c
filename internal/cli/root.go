package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/logger"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X"
var Version = "v0.1.0"

const envPrefix = "BLUEPRINT"

// app carries state shared by every subcommand of one root command
type app struct {
	cfgFile string
	verbose bool

	v      *viper.Viper
	cfg    *model.Config
	logger *zap.Logger
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the blueprint command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "blueprint",
		Short: "Money Blueprint - turn wizard answers into an LLM-ready prompt",
		Long: `Blueprint turns Money Blueprint wizard answers into a deterministic,
privacy-scrubbed prompt payload for a language model.

It normalises the answers, derives plain-English summary insights,
flags risky money habits, and assembles system and user messages
with a stable fingerprint.

Blueprint never calls a model. It produces the request; you decide
where it goes.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.blueprint/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = a.v.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newVersionCmd(),
		newBuildCmd(a),
		newInsightsCmd(a),
		newBatchCmd(a),
		newConfigCmd(a),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config needed to print a version
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blueprint %s\n", Version)
		},
	}
}

// loadConfig resolves flags, BLUEPRINT_* env vars, the config file and
// defaults (highest to lowest) into a.cfg, then builds the logger
func (a *app) loadConfig() error {
	v := a.v
	setDefaults(v, model.DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".blueprint"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	level := cfg.Log.Level
	if cfg.Output.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("prompt.tone", cfg.Prompt.Tone)
	v.SetDefault("prompt.system_instructions", cfg.Prompt.SystemInstructions)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	v.SetDefault("llm.temperature", cfg.LLM.Temperature)
}
