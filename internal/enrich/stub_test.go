package enrich

import (
	"context"

	"github.com/jonathan/resume-formatter/internal/llm"
)

// stubClient is a scriptable judgment-service client for stage tests.
type stubClient struct {
	completeFn func(system, user string) (string, error)
	jsonFn     func(system, user string) (string, error)
	calls      int
}

func (s *stubClient) Complete(_ context.Context, system, user string, _ llm.ModelTier) (string, error) {
	s.calls++
	return s.completeFn(system, user)
}

func (s *stubClient) CompleteJSON(_ context.Context, system, user string, _ llm.ModelTier) (string, error) {
	s.calls++
	return s.jsonFn(system, user)
}

func (s *stubClient) Close() error { return nil }

// textClient returns a stub whose Complete always answers with text.
func textClient(text string) *stubClient {
	return &stubClient{completeFn: func(string, string) (string, error) {
		return text, nil
	}}
}

// jsonClient returns a stub whose CompleteJSON always answers with body.
func jsonClient(body string) *stubClient {
	return &stubClient{jsonFn: func(string, string) (string, error) {
		return body, nil
	}}
}
