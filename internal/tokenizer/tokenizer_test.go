package tokenizer

import "testing"

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountText(t *testing.T) {
	tokens, err := CountText(testCounter{}, "hello")
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if tokens != len([]rune("hello")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("hello")), tokens)
	}
}

func TestCountTextNilCounter(t *testing.T) {
	if _, err := CountText(nil, "hello"); err == nil {
		t.Fatalf("expected error for nil counter")
	}
}

func TestNewCounterDefault(t *testing.T) {
	counter, model, err := NewCounter(Config{Model: "gpt-4o"})
	if err != nil {
		t.Skipf("tokenizer dictionaries unavailable: %v", err)
	}
	if counter == nil {
		t.Fatalf("expected non-nil counter")
	}
	if model != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %q", model)
	}
	tokens, err := counter.CountString("hello world")
	if err != nil {
		t.Fatalf("CountString error: %v", err)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}
