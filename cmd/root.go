package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-screener"
)

type Config struct {
	JobDescription     string         `mapstructure:"job-description"`
	JobDescriptionFile string         `mapstructure:"job-description-file"`
	Export             string         `mapstructure:"export"`
	Batch              *BatchConfig   `mapstructure:"batch"`
	Extract            *ExtractConfig `mapstructure:"extract"`
	AI                 *AIConfig      `mapstructure:"ai"`
}

type BatchConfig struct {
	GroupSize     int  `mapstructure:"group-size"`
	RatePerMinute int  `mapstructure:"rate-per-minute"`
	BestEffort    bool `mapstructure:"best-effort"`
	KeepFiles     bool `mapstructure:"keep-files"`
}

type ExtractConfig struct {
	Language string `mapstructure:"language"`
}

type AIConfig struct {
	Backend  string          `mapstructure:"backend"`
	Gemini   *GeminiConfig   `mapstructure:"gemini"`
	GPT4     *ChatConfig     `mapstructure:"gpt4"`
	DeepSeek *DeepSeekConfig `mapstructure:"deepseek"`
	Llama    *ChatConfig     `mapstructure:"llama"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ChatConfig struct {
	BaseURL    string `mapstructure:"base-url"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type DeepSeekConfig struct {
	ChatConfig `mapstructure:",squash"`
	// ReasonLimit caps how many match and mismatch reasons a score keeps.
	// Zero keeps everything.
	ReasonLimit int `mapstructure:"reason-limit"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener is a cli for parsing and scoring resume batches with AI backends",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// API keys and endpoints may live in a local .env file.
	_ = godotenv.Load()

	if runCmd.CalledAs() == "" {
		return
	}

	viper.SetDefault("batch.group-size", 4)
	viper.SetDefault("batch.rate-per-minute", 12)
	viper.SetDefault("extract.language", "eng")
	viper.SetDefault("ai.backend", "gemini")
	viper.SetDefault("ai.deepseek.reason-limit", 3)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional, everything can come from flags and the
	// environment. A malformed file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
