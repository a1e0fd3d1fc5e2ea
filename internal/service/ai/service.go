package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/symptexlab/symptex-api/internal/config"
	"github.com/symptexlab/symptex-api/internal/model/sim"
)

// Service wraps the completion backend. It holds one compiled chain per
// selectable model plus the fixed evaluation chain; the chain table is built
// and checked against the model enumeration at startup.
type Service struct {
	chains    map[string]compose.Runnable[map[string]any, *schema.Message]
	evalChain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the service from gateway configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	models := make(map[string]model.BaseChatModel, len(sim.Models()))
	for _, modelID := range sim.Models() {
		chatModel, err := cfg.NewChatModel(ctx, modelID)
		if err != nil {
			return nil, fmt.Errorf("create chat model %s: %w", modelID, err)
		}
		models[modelID] = chatModel
	}

	evalModel, err := cfg.NewEvalModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create eval model: %w", err)
	}

	return NewServiceWithModels(ctx, models, evalModel)
}

// NewServiceWithModels builds the service from preconstructed chat models.
// Tests inject scripted models here. Every member of the model enumeration
// must be covered.
func NewServiceWithModels(ctx context.Context, models map[string]model.BaseChatModel, evalModel model.BaseChatModel) (*Service, error) {
	chains := make(map[string]compose.Runnable[map[string]any, *schema.Message], len(models))
	for _, modelID := range sim.Models() {
		chatModel, ok := models[modelID]
		if !ok {
			return nil, fmt.Errorf("no chat model supplied for %s", modelID)
		}
		runnable, err := compileChatChain(ctx, chatModel)
		if err != nil {
			return nil, fmt.Errorf("compile chain for %s: %w", modelID, err)
		}
		chains[modelID] = runnable
	}

	evalChain, err := compileEvalChain(ctx, evalModel)
	if err != nil {
		return nil, fmt.Errorf("compile eval chain: %w", err)
	}

	return &Service{chains: chains, evalChain: evalChain}, nil
}

// Stream starts a streaming completion for one patient reply. The returned
// reader yields fragments in arrival order; the caller drains and closes it.
func (s *Service) Stream(ctx context.Context, modelID, systemPrompt string, examples, history []*schema.Message, query string) (*schema.StreamReader[*schema.Message], error) {
	chain, ok := s.chains[modelID]
	if !ok {
		return nil, fmt.Errorf("no chain for model %s", modelID)
	}

	return chain.Stream(ctx, map[string]any{
		"system":   systemPrompt,
		"examples": examples,
		"history":  history,
		"query":    query,
	})
}

// EvaluateStream starts a streaming rubric evaluation of the transcript.
func (s *Service) EvaluateStream(ctx context.Context, transcript []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
	return s.evalChain.Stream(ctx, map[string]any{
		"rubric":     evalRubric,
		"transcript": transcript,
	})
}

func compileChatChain(ctx context.Context, chatModel model.BaseChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("examples", true),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)
	return chain.Compile(ctx)
}

func compileEvalChain(ctx context.Context, evalModel model.BaseChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{rubric}"),
		schema.MessagesPlaceholder("transcript", true),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(evalModel)
	return chain.Compile(ctx)
}
