// Package ai fronts the hosted completion service: mode-scoped chat
// sessions and the one-shot multimodal resume review. The underlying
// model is reached through an eino chain so the provider stays swappable
// behind model.ChatModel.
package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/adityanegi/portfolio/backend/internal/model/chat"
)

// historyLimit caps how many prior turns are replayed to the model.
const historyLimit = 10

// Service runs persona-scoped completions over a chat model.
type Service struct {
	chatModel model.ChatModel
	prompts   *PromptSet
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the chat chain over the supplied model. The model is
// injected rather than constructed here so tests can observe the exact
// messages a session sends.
func NewService(ctx context.Context, chatModel model.ChatModel, prompts *PromptSet) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, prompts: prompts, chain: runnable}, nil
}

// Prompts exposes the instruction set, mainly for handlers and tests.
func (s *Service) Prompts() *PromptSet {
	return s.prompts
}

// generate runs one turn with the given mode's system instruction and the
// replayable history window.
func (s *Service) generate(ctx context.Context, mode chat.Mode, history []*schema.Message, query string) (*schema.Message, error) {
	input := map[string]any{
		"system":  s.prompts.System(mode),
		"history": window(history),
		"query":   query,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run chat chain: %w", err)
	}
	return response, nil
}

func window(history []*schema.Message) []*schema.Message {
	if len(history) <= historyLimit {
		return history
	}
	return history[len(history)-historyLimit:]
}
