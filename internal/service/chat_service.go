package service

import (
	"context"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/prompt"
)

type IChatService interface {
	// Ready reports a missing credential without contacting upstream.
	Ready() error
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	completer gateway.Completer
	options   []llm.Option
}

func NewChatService(completer gateway.Completer, options ...llm.Option) IChatService {
	return &chatService{
		completer: completer,
		options:   options,
	}
}

func (s *chatService) Ready() error {
	return s.completer.Ready()
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	messages := prompt.Compose(req.History, req.Prompt, req.VerseContext)

	res, err := s.completer.Complete(ctx, messages, s.options...)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Message:   res.Message,
		Timestamp: res.Timestamp,
	}, nil
}
