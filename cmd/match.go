package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/arpitpandey99/jobmatcher/internal/ai"
	"github.com/arpitpandey99/jobmatcher/internal/ai/gemini"
	"github.com/arpitpandey99/jobmatcher/internal/logger"
	"github.com/arpitpandey99/jobmatcher/internal/match"
	"github.com/arpitpandey99/jobmatcher/internal/posting"
	"github.com/arpitpandey99/jobmatcher/internal/profile"
	"github.com/arpitpandey99/jobmatcher/internal/rationale"
	"github.com/arpitpandey99/jobmatcher/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport    = "Show match report"
	PromptDumpToFile    = "Dump matches to file"
	PromptReportToFile  = "Save report to file"
	PromptExit          = "Exit"
	geminiAPIKeyEnvName = "GEMINI_API_KEY"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptDumpToFile, PromptReportToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank scraped job postings against the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("profile", "p", "", "candidate profile JSON file produced by the resume parser")
	matchCmd.Flags().StringSliceP("postings", "i", nil, "posting dump files to rank, merged in order")
	matchCmd.Flags().BoolP("non-interactive", "y", false, "print the report and exit without prompting")
	matchCmd.Flags().Float64P("threshold", "t", -1, "override the configured similarity threshold")
	matchCmd.Flags().IntP("top-k", "k", 0, "override the configured shortlist size")

	viper.BindPFlag("profile-file", matchCmd.Flags().Lookup("profile"))
	viper.BindPFlag("postings-files", matchCmd.Flags().Lookup("postings"))
}

// runMatch is the main command for the cli.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobmatcher", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	profilePath := strings.TrimSpace(viper.GetString("profile-file"))
	if profilePath == "" {
		logger.Fatal("candidate profile file is required",
			zap.String("hint", "set profile-file in the config or pass --profile"),
		)
	}

	postingPaths := viper.GetStringSlice("postings-files")
	if len(postingPaths) == 0 {
		logger.Fatal("at least one posting dump file is required",
			zap.String("hint", "set postings-files in the config or pass --postings"),
		)
	}

	prof, err := profile.FromFile(profilePath)
	if err != nil {
		logger.Fatal("loading candidate profile", zap.Error(err))
	}
	logger.Info("candidate profile loaded",
		zap.String("name", prof.Name),
		zap.Int("skills", len(prof.Skills)),
		zap.Float64("experience_years", prof.ExperienceYrs),
	)

	postings, err := posting.FromFiles(postingPaths)
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}
	logger.Info("postings loaded", zap.Int("count", postings.Len()), zap.Strings("files", postingPaths))

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings found in the dump files"))
		return
	}

	embedder, explainer := prepareCapabilities(ctx, config, logger)

	engine, err := match.New(engineConfig(cmd, config.Matching), embedder, logger)
	if err != nil {
		logger.Fatal("building the match engine", zap.Error(err))
	}

	outcome, err := engine.Match(ctx, prof, postings)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	annotator := rationale.New(explainer, rationaleConfig(config.Rationale), logger)
	annotator.Annotate(ctx, prof, outcome.Matches)

	logger.Info("matching completed",
		zap.String("strategy", outcome.Strategy),
		zap.Float64("threshold", outcome.Threshold),
		zap.Int("matches", len(outcome.Matches)),
		zap.Int("skipped", len(outcome.Skipped)),
		zap.Int("duplicates_dropped", outcome.Deduped),
	)

	if len(outcome.Matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings passed the threshold"))
		return
	}

	if cmd.Flag("non-interactive").Value.String() == "true" {
		fmt.Println(match.BuildReport(prof, outcome))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, prof, outcome, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, prof *profile.Profile, outcome *match.Outcome, logger *zap.Logger) error {
	switch action {
	case PromptShowReport:
		fmt.Println(match.BuildReport(prof, outcome))
		return nil
	case PromptDumpToFile:
		filename, err := dumpOutcome(outcome)
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	case PromptReportToFile:
		file, err := os.CreateTemp("", "match_report_*.txt")
		if err != nil {
			return fmt.Errorf("save report to file: %w", err)
		}
		defer file.Close()
		if _, err := file.WriteString(match.BuildReport(prof, outcome)); err != nil {
			return fmt.Errorf("save report to file: %w", err)
		}
		logger.Info("saving report to file", zap.String("filename", file.Name()))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func dumpOutcome(outcome *match.Outcome) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func engineConfig(cmd *cobra.Command, cfg *MatchingConfig) *match.Config {
	out := &match.Config{
		Threshold:       match.DefaultThreshold,
		TopK:            match.DefaultTopK,
		Strategy:        match.StrategyAuto,
		CoverageDefault: match.DefaultCoverageRatio,
	}

	if cfg != nil {
		if cfg.Threshold != nil {
			out.Threshold = *cfg.Threshold
		}
		if cfg.TopK > 0 {
			out.TopK = cfg.TopK
		}
		if cfg.Strategy != "" {
			out.Strategy = cfg.Strategy
		}
		if cfg.CoverageDefault != nil {
			out.CoverageDefault = *cfg.CoverageDefault
		}
		out.Taxonomy = cfg.Taxonomy
		out.Parallelism = cfg.Parallelism
	}

	if cmd != nil {
		if flag := cmd.Flag("threshold"); flag != nil && flag.Changed {
			fmt.Sscanf(flag.Value.String(), "%f", &out.Threshold)
		}
		if flag := cmd.Flag("top-k"); flag != nil && flag.Changed {
			fmt.Sscanf(flag.Value.String(), "%d", &out.TopK)
		}
	}

	return out
}

func rationaleConfig(cfg *RationaleConfig) *rationale.Config {
	if cfg == nil {
		return nil
	}
	return &rationale.Config{
		MaxInFlight: cfg.MaxInFlight,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
	}
}

// prepareCapabilities builds the optional encoder and rationale capabilities.
// Both may be nil; the engine then commits to the term-weighting fallback and
// the annotator to the template rationale.
func prepareCapabilities(ctx context.Context, config *Config, log *zap.Logger) (ai.Embedder, ai.Explainer) {
	if config.AI == nil || !config.AI.Enabled {
		log.Info("ai capabilities disabled in config")
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("unsupported ai provider, continuing without ai capabilities",
			zap.String("provider", config.AI.Provider),
		)
		return nil, nil
	}

	geminiCfg := config.AI.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  geminiAPIKeyEnvName,
	})
	if err != nil {
		log.Warn("no gemini api key, continuing without ai capabilities",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY"),
		)
		return nil, nil
	}

	client, err := gemini.NewClient(ctx, apiKey, geminiCfg.Model, geminiCfg.EmbeddingModel)
	if err != nil {
		log.Warn("building gemini client failed, continuing without ai capabilities", zap.Error(err))
		return nil, nil
	}

	embedLogger := logger.WithProviderFields(log, "gemini", client.EmbeddingModel())
	explainLogger := logger.WithProviderFields(log, "gemini", client.Model())

	return gemini.NewEmbedder(client, embedLogger), gemini.NewExplainer(client, explainLogger, geminiCfg.MaxLogLength)
}
