package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/triplex-nlp/triplex/internal/cache"
	"github.com/triplex-nlp/triplex/internal/model"
)

// stubProvider records requests and returns a fixed response.
type stubProvider struct {
	response string
	err      error
	requests []CompletionRequest
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &CompletionResponse{Text: s.response, Model: "stub"}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func TestAgent_Propose_FirstAttempt(t *testing.T) {
	provider := &stubProvider{response: "跑步(小明, null)"}
	agent := NewAgent(provider, nil)

	text, err := agent.Propose(context.Background(), "小明跑步。", nil)
	if err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if text != "跑步(小明, null)" {
		t.Errorf("Unexpected proposal: %q", text)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	if req.System == "" {
		t.Error("Expected a system message on extraction")
	}
	if !strings.Contains(req.Prompt, "小明跑步。") {
		t.Error("Expected the sentence in the extraction prompt")
	}
}

func TestAgent_Propose_Revision(t *testing.T) {
	provider := &stubProvider{response: `{location="在公园"} 跑步(小明, null)`}
	agent := NewAgent(provider, nil)

	prior := &model.Prior{
		Triplet:  model.Triplet{Predicate: "跑步", Subject: "小明"},
		Feedback: "sentence implies role location but the triplet omits it",
	}

	if _, err := agent.Propose(context.Background(), "小明在公园跑步。", prior); err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	req := provider.requests[0]
	if !strings.Contains(req.Prompt, "跑步(小明, null)") {
		t.Error("Expected the previous triplet in the revision prompt")
	}
	if !strings.Contains(req.Prompt, prior.Feedback) {
		t.Error("Expected the validator feedback in the revision prompt")
	}
}

func TestAgent_Propose_WrapsTransportError(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	agent := NewAgent(provider, nil)

	_, err := agent.Propose(context.Background(), "小明跑步。", nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var oracleErr *OracleError
	if !errors.As(err, &oracleErr) {
		t.Fatalf("Expected *OracleError, got %T", err)
	}
	if oracleErr.Op != "propose" {
		t.Errorf("Expected op propose, got %q", oracleErr.Op)
	}
}

func TestAgent_Judge(t *testing.T) {
	provider := &stubProvider{response: `{"complete": true, "recoverable": true}`}
	agent := NewAgent(provider, nil)

	verdict, err := agent.Judge(context.Background(), "小明跑步。", "跑步(小明, null)")
	if err != nil {
		t.Fatalf("Judge failed: %v", err)
	}
	if verdict != `{"complete": true, "recoverable": true}` {
		t.Errorf("Unexpected verdict: %q", verdict)
	}

	req := provider.requests[0]
	if !strings.Contains(req.Prompt, "跑步(小明, null)") {
		t.Error("Expected the serialized triplet in the judgment prompt")
	}
	if !strings.Contains(req.Prompt, "小明跑步。") {
		t.Error("Expected the sentence in the judgment prompt")
	}
}

func TestAgent_Judge_CachesVerdicts(t *testing.T) {
	provider := &stubProvider{response: `{"complete": true, "recoverable": true}`}
	judged := cache.NewMemoryCache(time.Minute, time.Minute)
	agent := NewAgent(provider, judged)

	for i := 0; i < 3; i++ {
		verdict, err := agent.Judge(context.Background(), "小明跑步。", "跑步(小明, null)")
		if err != nil {
			t.Fatalf("Judge %d failed: %v", i, err)
		}
		if verdict != `{"complete": true, "recoverable": true}` {
			t.Errorf("Unexpected verdict: %q", verdict)
		}
	}

	if len(provider.requests) != 1 {
		t.Errorf("Expected 1 provider call with caching, got %d", len(provider.requests))
	}
}

func TestAgent_Judge_WrapsTransportError(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	agent := NewAgent(provider, nil)

	_, err := agent.Judge(context.Background(), "小明跑步。", "跑步(小明, null)")

	var oracleErr *OracleError
	if !errors.As(err, &oracleErr) {
		t.Fatalf("Expected *OracleError, got %T", err)
	}
	if oracleErr.Op != "judge" {
		t.Errorf("Expected op judge, got %q", oracleErr.Op)
	}
}
