package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/index"
	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/storage"
)

type askOptions struct {
	provider   string
	model      string
	baseURL    string
	template   string
	storageDir string
	stream     bool
	verbose    bool
}

func newAskCmd() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question answered from the model's internal knowledge",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", "openai", "LLM provider (openai, ollama, bedrock)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model name (provider default if empty)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "provider API base URL")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "prompt template with a {query_str} placeholder")
	cmd.Flags().StringVar(&opts.storageDir, "storage-dir", "", "directory to persist the index structure")
	cmd.Flags().BoolVarP(&opts.stream, "stream", "s", false, "stream the LLM call")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log query events")

	return cmd
}

func runAsk(ctx context.Context, opts *askOptions, question string) error {
	llmModel, err := buildLLM(opts)
	if err != nil {
		return err
	}

	sc, err := buildStorageContext(ctx, opts.storageDir)
	if err != nil {
		return err
	}

	emptyIndex, err := loadOrCreateIndex(ctx, sc)
	if err != nil {
		return err
	}

	engineOpts := []index.QueryEngineOption{
		index.WithQueryEngineLLM(llmModel),
		index.WithQueryEngineStreaming(opts.stream),
	}

	if opts.template != "" {
		if !strings.Contains(opts.template, "{query_str}") {
			return fmt.Errorf("template must contain a {query_str} placeholder")
		}
		engineOpts = append(engineOpts, index.WithSimpleInputTemplate(
			prompts.NewPromptTemplate(opts.template, prompts.PromptTypeSimpleInput),
		))
	}

	if opts.verbose {
		cm := callbacks.NewCallbackManager()
		cm.AddHandler(callbacks.NewLoggingHandler(callbacks.WithWriter(os.Stderr)))
		engineOpts = append(engineOpts, index.WithQueryEngineCallbackManager(cm))
	}

	engine, err := emptyIndex.AsQueryEngine(engineOpts...)
	if err != nil {
		return err
	}

	response, err := engine.Query(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(response.String())

	if opts.storageDir != "" {
		if err := sc.Persist(ctx, opts.storageDir); err != nil {
			slog.Warn("failed to persist storage", "error", err)
		}
	}

	return nil
}

func buildLLM(opts *askOptions) (llm.LLM, error) {
	switch opts.provider {
	case "openai":
		return llm.NewOpenAILLM(opts.baseURL, opts.model, ""), nil
	case "ollama":
		var ollamaOpts []llm.OllamaOption
		if opts.baseURL != "" {
			ollamaOpts = append(ollamaOpts, llm.WithOllamaBaseURL(opts.baseURL))
		}
		if opts.model != "" {
			ollamaOpts = append(ollamaOpts, llm.WithOllamaModel(opts.model))
		}
		return llm.NewOllamaLLM(ollamaOpts...), nil
	case "bedrock":
		var bedrockOpts []llm.BedrockOption
		if opts.model != "" {
			bedrockOpts = append(bedrockOpts, llm.WithBedrockModel(opts.model))
		}
		return llm.NewBedrockLLM(bedrockOpts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected openai, ollama or bedrock)", opts.provider)
	}
}

func buildStorageContext(ctx context.Context, storageDir string) (*storage.StorageContext, error) {
	if storageDir == "" {
		return storage.NewStorageContext(), nil
	}
	return storage.StorageContextFromPersistDir(ctx, storageDir)
}

// loadOrCreateIndex reuses a persisted empty index if one exists.
func loadOrCreateIndex(ctx context.Context, sc *storage.StorageContext) (*index.EmptyIndex, error) {
	if loaded, err := index.LoadEmptyIndex(ctx, sc, ""); err == nil {
		return loaded, nil
	}
	return index.NewEmptyIndex(ctx, index.WithEmptyIndexStorageContext(sc))
}
