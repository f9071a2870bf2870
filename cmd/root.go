package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skill-heatmap/internal/filtering"
)

const (
	app = "skill-heatmap"

	envPrefix       = "SKILL_HEATMAP"
	defaultPosition = "Posk_UXdesigner_sr001"
	defaultAddr     = ":8080"
	defaultTimeout  = 10 * time.Second

	defaultRefreshConcurrency = 4
)

type Config struct {
	APIURL     string        `mapstructure:"api-url" validate:"omitempty,url"`
	UserAgent  string        `mapstructure:"user-agent"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Position   string        `mapstructure:"position" validate:"required"`
	Skills     []string      `mapstructure:"skills" validate:"omitempty,unique,dive,required"`
	Thresholds []string      `mapstructure:"thresholds" validate:"dive,threshold"`
	Exclude    *struct {
		Candidates []string `mapstructure:"candidates" validate:"dive,required"`
	} `mapstructure:"exclude"`
	Filters *struct {
		Disabled []string `mapstructure:"disabled" validate:"dive,oneof=thresholds excluded_candidates"`
	} `mapstructure:"filters"`
	RefreshConcurrency int           `mapstructure:"refresh-concurrency" validate:"gte=0"`
	Server             *ServerConfig `mapstructure:"server" validate:"required"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// DisabledFilters returns the names of the filtering steps turned off in config.
func (c *Config) DisabledFilters() []string {
	if c.Filters == nil {
		return nil
	}
	return c.Filters.Disabled
}

// ExcludedCandidates returns the configured exclusions, if any.
func (c *Config) ExcludedCandidates() []string {
	if c.Exclude == nil {
		return nil
	}
	return c.Exclude.Candidates
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-heatmap compares candidates' consensus skill scores as a color heat map",
	}
)

// Execute executes the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-heatmap.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", "", "base url of the talent API")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))

	setDefaults(viper.GetViper())
}

// setDefaults also registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api-url", "")
	v.SetDefault("user-agent", "")
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("position", defaultPosition)
	v.SetDefault("skills", []string{})
	v.SetDefault("thresholds", []string{})
	v.SetDefault("exclude.candidates", []string{})
	v.SetDefault("filters.disabled", []string{})
	v.SetDefault("refresh-concurrency", defaultRefreshConcurrency)
	v.SetDefault("server.addr", defaultAddr)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Every key has a default, so running without a config file is fine.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := newValidator().Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// "Skill name=3", the same form the --threshold flag takes.
	_ = validate.RegisterValidation("threshold", func(fl validator.FieldLevel) bool {
		_, _, err := filtering.ParseAssignment(fl.Field().String())
		return err == nil
	})
	return validate
}
