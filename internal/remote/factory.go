package remote

import (
	"fmt"

	"github.com/voxlink-ai/voxlink/internal/domain"
)

// Provider constants
const (
	ProviderHTTP = "http"
	ProviderMock = "mock"
)

// HTTPFactory binds gateway clients to tenant credentials against a fixed
// platform base URL.
type HTTPFactory struct {
	baseURL string
}

func (f *HTTPFactory) ForTenant(remoteAPIKey string) domain.RemoteGateway {
	return NewClient(f.baseURL, remoteAPIKey)
}

// MockFactory hands every tenant the same in-memory gateway. Used in tests
// and when REMOTE_PROVIDER=mock.
type MockFactory struct {
	Gateway *MockGateway
}

func (f *MockFactory) ForTenant(remoteAPIKey string) domain.RemoteGateway {
	return f.Gateway
}

// NewFactory creates a gateway factory based on the provider name.
func NewFactory(provider, baseURL string) (domain.GatewayFactory, error) {
	switch provider {
	case ProviderHTTP:
		if baseURL == "" {
			return nil, fmt.Errorf("REMOTE_API_BASE_URL is required for the http provider")
		}
		return &HTTPFactory{baseURL: baseURL}, nil

	case ProviderMock:
		return &MockFactory{Gateway: NewMockGateway()}, nil

	default:
		return nil, fmt.Errorf("unknown remote provider: %s (valid options: http, mock)", provider)
	}
}
