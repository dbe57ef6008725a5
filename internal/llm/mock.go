package llm

import "context"

// MockClient is a test double for Client.
type MockClient struct {
	ProviderName string
	ConverseFunc func(ctx context.Context, req Request) (*Reply, error)

	// Requests records every request seen, in order.
	Requests []Request
}

func (m *MockClient) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockClient) Converse(ctx context.Context, req Request) (*Reply, error) {
	m.Requests = append(m.Requests, req)
	if m.ConverseFunc != nil {
		return m.ConverseFunc(ctx, req)
	}
	return &Reply{Content: "mock response"}, nil
}
