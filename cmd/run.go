package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"resume-screener/internal/ai"
	"resume-screener/internal/ai/gemini"
	"resume-screener/internal/ai/openaichat"
	"resume-screener/internal/extract"
	"resume-screener/internal/logger"
	"resume-screener/internal/report"
	"resume-screener/internal/resume"
	"resume-screener/internal/scheduler"
	"resume-screener/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var runCmd = &cobra.Command{
	Use:   "run [files or directories]",
	Short: "Parse and score a batch of resume files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("model", "m", "", "AI backend to use: gemini, gpt4, deepseek or llama")
	runCmd.Flags().String("job-description", "", "position description to score resumes against")
	runCmd.Flags().String("job-description-file", "", "file with the position description")
	runCmd.Flags().StringP("export", "o", "", "write results to this xlsx file instead of stdout")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before processing")
	runCmd.Flags().Bool("best-effort", false, "keep processing remaining groups after failures")
	runCmd.Flags().Bool("keep-files", false, "do not remove input files after processing")

	viper.BindPFlag("ai.backend", runCmd.Flags().Lookup("model"))
	viper.BindPFlag("job-description", runCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("job-description-file", runCmd.Flags().Lookup("job-description-file"))
	viper.BindPFlag("export", runCmd.Flags().Lookup("export"))
	viper.BindPFlag("batch.best-effort", runCmd.Flags().Lookup("best-effort"))
	viper.BindPFlag("batch.keep-files", runCmd.Flags().Lookup("keep-files"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	docs, err := collectDocuments(args, logger)
	if err != nil {
		logger.Fatal("collecting input documents", zap.Error(err))
	}
	if len(docs) == 0 {
		logger.Fatal("no resume files found in the given input")
	}

	jobDescription, err := resolveJobDescription(config)
	if err != nil {
		logger.Fatal("resolving the job description", zap.Error(err))
	}
	if jobDescription == "" {
		logger.Info("no job description given, skipping the scoring stage")
	}

	backend, err := newBackend(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating the AI backend", zap.Error(err))
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Process %d resume(s) with the %s backend?", len(docs), backend.Name()),
			Items: []string{PromptYes, PromptNo},
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	batch := config.Batch
	if batch == nil {
		batch = &BatchConfig{}
	}

	sched := scheduler.New(scheduler.Config{
		GroupSize:     batch.GroupSize,
		RatePerMinute: batch.RatePerMinute,
		FailFast:      !batch.BestEffort,
		KeepFiles:     batch.KeepFiles,
	}, newExtractor(config, logger), backend, logger)

	records, procErrs, err := sched.Run(ctx, docs, jobDescription)
	if err != nil {
		logger.Fatal("running the batch", zap.Error(err))
	}

	halted := !batch.BestEffort && len(procErrs) > 0

	if export := strings.TrimSpace(config.Export); export == "" {
		if err := printResults(records, procErrs); err != nil {
			logger.Fatal("printing results", zap.Error(err))
		}
	} else if halted {
		// A halted batch is failed as a whole; no artifact is written.
		logger.Warn("batch halted on errors, skipping export", zap.String("file", export))
	} else {
		if err := report.WriteFile(export, records, procErrs); err != nil {
			logger.Fatal("exporting results", zap.Error(err))
		}
		logger.Info("results exported", zap.String("file", export))
	}

	if len(procErrs) > 0 {
		logger.Error("some documents failed",
			zap.Int("failed", len(procErrs)),
			zap.Int("succeeded", len(records)),
		)
		os.Exit(1)
	}
}

// collectDocuments expands the argument list into resume documents. A
// directory contributes its immediate files with a supported extension;
// explicitly named files must be supported.
func collectDocuments(paths []string, log *zap.Logger) ([]resume.Document, error) {
	docs := make([]resume.Document, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading input %q: %w", path, err)
		}

		if !info.IsDir() {
			doc, err := resume.NewDocument("", path)
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", path, err)
			}
			docs = append(docs, doc)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading input directory %q: %w", path, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			entryPath := filepath.Join(path, entry.Name())
			doc, err := resume.NewDocument("", entryPath)
			if err != nil {
				log.Debug("skipping unsupported file", zap.String("file", entry.Name()))
				continue
			}
			docs = append(docs, doc)
		}
	}

	return docs, nil
}

func resolveJobDescription(config *Config) (string, error) {
	if jd := strings.TrimSpace(config.JobDescription); jd != "" {
		return jd, nil
	}

	file := strings.TrimSpace(config.JobDescriptionFile)
	if file == "" {
		return "", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading job description file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func newExtractor(config *Config, log *zap.Logger) *extract.Extractor {
	cfg := extract.DefaultConfig()
	if config.Extract != nil && strings.TrimSpace(config.Extract.Language) != "" {
		cfg.Language = strings.TrimSpace(config.Extract.Language)
	}

	return extract.New(cfg, log)
}

// newBackend builds the AI backend selected in the configuration. API keys
// resolve from config files, then well-known environment variables, then
// inline values.
func newBackend(ctx context.Context, config *AIConfig, log *zap.Logger) (ai.Backend, error) {
	if config == nil {
		config = &AIConfig{}
	}

	switch ai.NormalizeID(config.Backend, log) {
	case ai.BackendGemini:
		cfg := config.Gemini
		if cfg == nil {
			cfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.APIKey,
			Env:   "GEMINI_API_KEY",
			File:  cfg.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key or GEMINI_API_KEY)", err)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
		if err != nil {
			return nil, err
		}

		log.Info("using gemini backend", logger.BackendFields(ai.BackendGemini, generator.Model())...)
		return gemini.NewBackend(generator), nil

	case ai.BackendGPT4:
		client, err := newChatClient(config.GPT4, "gpt4", "OPENAI_BASE_URL", "OPENAI_API_KEY", "CHATGPT_MODEL")
		if err != nil {
			return nil, err
		}

		log.Info("using gpt4 backend", logger.BackendFields(ai.BackendGPT4, client.Model())...)
		return openaichat.NewGPT4Backend(client), nil

	case ai.BackendDeepSeek:
		cfg := config.DeepSeek
		if cfg == nil {
			cfg = &DeepSeekConfig{}
		}

		client, err := newChatClient(&cfg.ChatConfig, "deepseek", "DEEPSEEK_BASE_URL", "DEEPSEEK_API_KEY", "DEEPSEEK_MODEL")
		if err != nil {
			return nil, err
		}

		log.Info("using deepseek backend",
			append(logger.BackendFields(ai.BackendDeepSeek, client.Model()), zap.Int("reason_limit", cfg.ReasonLimit))...)
		return openaichat.NewDeepSeekBackend(client, cfg.ReasonLimit), nil

	case ai.BackendLlama:
		client, err := newChatClient(config.Llama, "llama", "LLAMA_BASE_URL", "LLAMA_API_KEY", "LLAMA_MODEL")
		if err != nil {
			return nil, err
		}

		log.Info("using llama backend", logger.BackendFields(ai.BackendLlama, client.Model())...)
		return openaichat.NewLlamaBackend(client), nil
	}

	return nil, fmt.Errorf("unsupported ai backend: %s", config.Backend)
}

func newChatClient(cfg *ChatConfig, name, baseURLEnv, apiKeyEnv, modelEnv string) (*openaichat.Client, error) {
	if cfg == nil {
		cfg = &ChatConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  name + " api key",
		Value: cfg.APIKey,
		Env:   apiKeyEnv,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.%s.api-key or %s)", err, name, apiKeyEnv)
	}

	baseURL := firstNonEmpty(cfg.BaseURL, os.Getenv(baseURLEnv))
	model := firstNonEmpty(cfg.Model, os.Getenv(modelEnv))

	return openaichat.NewClient(baseURL, apiKey, model)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func printResults(records []resume.Record, procErrs []resume.ProcessingError) error {
	output := struct {
		Results []resume.Record          `json:"results"`
		Errors  []resume.ProcessingError `json:"errors,omitempty"`
	}{Results: records, Errors: procErrs}

	pretty, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	fmt.Println(string(pretty))
	return nil
}
