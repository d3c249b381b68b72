package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/buisihung11/langchain-basic/internal/llm"
)

type fakeClient struct {
	lastMessages []llm.Message
	reply        string
	err          error
}

func (f *fakeClient) Complete(ctx context.Context, messages []llm.Message, p llm.Params) (string, error) {
	f.lastMessages = messages
	return f.reply, f.err
}

type fakeStreamer struct {
	fakeClient
	chunks []string
}

func (f *fakeStreamer) CompleteStream(ctx context.Context, messages []llm.Message, p llm.Params, fn func(string) error) (string, error) {
	f.lastMessages = messages
	if f.err != nil {
		return "", f.err
	}
	full := ""
	for _, c := range f.chunks {
		full += c
		if err := fn(c); err != nil {
			return full, err
		}
	}
	return full, nil
}

func TestSendForwardsFullHistory(t *testing.T) {
	fc := &fakeClient{reply: "r1"}
	s := NewSession(fc, llm.Params{Model: "m"}, "system msg")

	if _, err := s.Send(context.Background(), "q1"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	fc.reply = "r2"
	if _, err := s.Send(context.Background(), "q2"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// system + q1 + r1 + q2
	msgs := fc.lastMessages
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d: %v", len(msgs), msgs)
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "system msg" {
		t.Errorf("system message missing or wrong: %+v", msgs[0])
	}
	if msgs[1].Content != "q1" || msgs[2].Content != "r1" || msgs[3].Content != "q2" {
		t.Errorf("history out of order: %v", msgs)
	}

	hist := s.History()
	if len(hist) != 4 {
		t.Errorf("expected 4 recorded turns, got %d", len(hist))
	}
}

func TestSendErrorLeavesHistoryUnchanged(t *testing.T) {
	fc := &fakeClient{err: errors.New("boom")}
	s := NewSession(fc, llm.Params{}, "")

	if _, err := s.Send(context.Background(), "q"); err == nil {
		t.Fatal("expected error")
	}
	if len(s.History()) != 0 {
		t.Errorf("failed send must not record turns, got %v", s.History())
	}
}

func TestSendStream(t *testing.T) {
	fs := &fakeStreamer{chunks: []string{"a", "b", "c"}}
	s := NewSession(fs, llm.Params{}, "")

	var got []string
	full, err := s.SendStream(context.Background(), "q", func(d string) error {
		got = append(got, d)
		return nil
	})
	if err != nil {
		t.Fatalf("SendStream: %v", err)
	}
	if full != "abc" {
		t.Errorf("full = %q", full)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 deltas, got %v", got)
	}
	if len(s.History()) != 2 {
		t.Errorf("expected recorded turn pair, got %v", s.History())
	}
}

func TestSendStreamFallback(t *testing.T) {
	// A plain Client without streaming gets one callback with the full reply.
	fc := &fakeClient{reply: "whole reply"}
	s := NewSession(fc, llm.Params{}, "")

	var got []string
	full, err := s.SendStream(context.Background(), "q", func(d string) error {
		got = append(got, d)
		return nil
	})
	if err != nil {
		t.Fatalf("SendStream: %v", err)
	}
	if full != "whole reply" || len(got) != 1 || got[0] != "whole reply" {
		t.Errorf("fallback mismatch: full=%q deltas=%v", full, got)
	}
}

func TestReset(t *testing.T) {
	fc := &fakeClient{reply: "r"}
	s := NewSession(fc, llm.Params{}, "sys")
	s.Send(context.Background(), "q")
	s.Reset()
	if len(s.History()) != 0 {
		t.Error("Reset should clear history")
	}

	s.Send(context.Background(), "q2")
	if fc.lastMessages[0].Role != llm.RoleSystem {
		t.Error("system message should survive Reset")
	}
}
