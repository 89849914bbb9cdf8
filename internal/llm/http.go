package llm

import (
	"net/http"
	"time"

	"github.com/ppiankov/verdict/internal/util"
)

// newHTTPClient builds the client shared by the HTTP providers
func newHTTPClient(config Config, defaultTimeout time.Duration) *http.Client {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: util.NewTransport(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
	}
}
