package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
)

// ErrNotConfigured is returned when the settings select no remote provider.
var ErrNotConfigured = errors.New("ai provider not configured")

// ForSettings returns the completer matching the configured provider.
// httpClient may be nil.
func ForSettings(ctx context.Context, settings domain.UserSettings, httpClient *http.Client) (ports.Completer, error) {
	if !settings.AIEnabled() {
		return nil, ErrNotConfigured
	}

	switch settings.AIProvider {
	case domain.ProviderGemini:
		return NewGemini(ctx, settings.APIKey, settings.APIModel)
	case domain.ProviderDeepSeek:
		return NewOpenAI(settings.APIURL, settings.APIKey, settings.APIModel, WithHTTPClient(httpClient)), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", settings.AIProvider)
	}
}
