// Package chat holds a conversation session against a completion client.
package chat

import (
	"context"

	"github.com/buisihung11/langchain-basic/internal/llm"
)

// Session accumulates chat turns and forwards the full history on every
// send. A Session is owned by exactly one caller (one REPL, one
// websocket connection); it is not safe for concurrent use.
type Session struct {
	client llm.Client
	params llm.Params
	system string
	turns  []llm.Message
}

// NewSession creates an empty session.
func NewSession(client llm.Client, params llm.Params, systemMessage string) *Session {
	return &Session{client: client, params: params, system: systemMessage}
}

func (s *Session) messages(input string) []llm.Message {
	msgs := make([]llm.Message, 0, len(s.turns)+2)
	if s.system != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: s.system})
	}
	msgs = append(msgs, s.turns...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: input})
	return msgs
}

func (s *Session) record(input, reply string) {
	s.turns = append(s.turns,
		llm.Message{Role: llm.RoleUser, Content: input},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
}

// Send forwards the history plus input and records the reply.
// A failed call leaves the history unchanged.
func (s *Session) Send(ctx context.Context, input string) (string, error) {
	reply, err := s.client.Complete(ctx, s.messages(input), s.params)
	if err != nil {
		return "", err
	}
	s.record(input, reply)
	return reply, nil
}

// SendStream is Send with incremental delivery: fn receives each content
// delta as it arrives. Clients that cannot stream fall back to a single
// fn call with the whole reply.
func (s *Session) SendStream(ctx context.Context, input string, fn func(delta string) error) (string, error) {
	streamer, ok := s.client.(llm.Streamer)
	if !ok {
		reply, err := s.Send(ctx, input)
		if err != nil {
			return "", err
		}
		if fn != nil {
			if err := fn(reply); err != nil {
				return reply, err
			}
		}
		return reply, nil
	}

	reply, err := streamer.CompleteStream(ctx, s.messages(input), s.params, fn)
	if err != nil {
		return "", err
	}
	s.record(input, reply)
	return reply, nil
}

// History returns a copy of the recorded turns, oldest first.
func (s *Session) History() []llm.Message {
	return append([]llm.Message(nil), s.turns...)
}

// Reset clears the conversation history, keeping the system message.
func (s *Session) Reset() { s.turns = nil }
