package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	// Provider config: each backend needs its own credential or
	// endpoint before the app can start.
	switch c.Provider.Name {
	case "openai":
		if c.Provider.OpenaiApiKey == "" {
			return errors.New("provider.openai_api_key is required when provider.name is 'openai' (set OPENAI_API_KEY)")
		}
	case "gemini":
		if c.Provider.GoogleApiKey == "" {
			return errors.New("provider.google_api_key is required when provider.name is 'gemini' (set GEMINI_API_KEY)")
		}
	case "falcon":
		if c.Provider.FalconBaseURL == "" {
			return errors.New("provider.falcon_base_url is required when provider.name is 'falcon' (set FALCON_API_BASE_URL)")
		}
	default:
		return fmt.Errorf("provider.name must be one of openai, gemini, falcon (got %q)", c.Provider.Name)
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return errors.New("provider.timeout_seconds must be a positive integer")
	}

	// Admission config
	if c.RateLimit.MaxRequests <= 0 {
		return errors.New("rate_limit.max_requests must be a positive integer")
	}
	if c.RateLimit.WindowSeconds <= 0 {
		return errors.New("rate_limit.window_seconds must be a positive integer")
	}
	if c.Quota.MaxTokensPerDay <= 0 {
		return errors.New("quota.max_tokens_per_day must be a positive integer")
	}
	if c.Quota.MaxRequestsPerDay <= 0 {
		return errors.New("quota.max_requests_per_day must be a positive integer")
	}
	if c.Cache.TTLSeconds <= 0 {
		return errors.New("cache.ttl_seconds must be a positive integer")
	}

	// Worker config only matters once Redis is configured.
	if c.Redis.Address != "" {
		if c.Worker.Concurrency <= 0 {
			return errors.New("worker.concurrency must be a positive integer")
		}
		if len(c.Worker.Queues) == 0 {
			return errors.New("worker.queues must define at least one queue")
		}
		for name, priority := range c.Worker.Queues {
			if name == "" {
				return errors.New("worker.queues contains an empty queue name")
			}
			if priority <= 0 {
				return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
			}
		}
	}

	return nil
}
