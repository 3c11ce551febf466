package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/model"
	"github.com/ppiankov/candor/internal/pipeline"
	"github.com/ppiankov/candor/internal/render"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noColor bool
	format  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "candor",
	Short: "Candor - review legitimacy diagnostics",
	Long: `Candor classifies user-submitted business reviews as legitimate or as one of
several policy violations: advertisement, no-visit, off-topic, inappropriate,
personal information, fake or suspicious.

It combines pattern rules, business-context relevance, text features and
review metadata (place name, star rating) into a heuristic confidence score.

The confidence score is a heuristic, not a calibrated probability.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and analysis model version for Candor.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "candor v%s (model %s)\n", Version, model.ModelVersion)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.candor/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "o", "", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	registerDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".candor"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CANDOR_*, e.g. CANDOR_SERVER_ADDR
	viper.SetEnvPrefix("CANDOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper so env overrides apply
func registerDefaults() {
	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return
	}
	setDefaults("", tree)
}

func setDefaults(prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, value)
	}
}

// loadConfig returns the effective configuration: defaults, file, env, then flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if noColor {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (logging.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
}

func newRenderer(cfg *model.Config) (*render.Renderer, error) {
	f, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}
	return render.NewRenderer(f, !cfg.Output.Color, cfg.Output.Verbose), nil
}

// app holds what every analysis command needs
type app struct {
	cfg      *model.Config
	logger   logging.Logger
	renderer *render.Renderer
	analyzer *pipeline.Analyzer
}

// newApp loads config and builds the logger, renderer and analyzer
func newApp(opts ...pipeline.Option) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]pipeline.Option{pipeline.WithLogger(logger)}, opts...)
	analyzer, err := pipeline.NewAnalyzerFromConfig(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	return &app{cfg: cfg, logger: logger, renderer: r, analyzer: analyzer}, nil
}
