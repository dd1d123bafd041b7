package gateway

import (
	"fmt"
	"log/slog"

	"github.com/vesaa/maderas/internal/config"
)

// FromConfig builds the chain named by cfg.ContactGateways. saver backs the
// database step and may be nil when that step is not configured.
func FromConfig(cfg *config.Config, saver InquirySaver, log *slog.Logger) (*Chain, error) {
	steps := make([]Step, 0, len(cfg.ContactGateways))
	for _, name := range cfg.ContactGateways {
		var s Submitter
		switch name {
		case config.GatewayDelay:
			s = NewDelay(cfg.SubmitDelay())
		case config.GatewayDatabase:
			if saver == nil {
				return nil, fmt.Errorf("gateway %q needs a database", name)
			}
			s = NewDatabase(saver)
		case config.GatewayWebhook:
			s = NewWebhook(cfg.WebhookURL, cfg.WebhookToken, cfg.WebhookTimeout())
		case config.GatewayNotify:
			n, err := NewNotify(cfg.NotifyURLs, cfg.WebhookTimeout())
			if err != nil {
				return nil, fmt.Errorf("gateway %q: %w", name, err)
			}
			s = n
		default:
			return nil, fmt.Errorf("unknown gateway %q", name)
		}
		steps = append(steps, Step{Name: name, Submitter: s})
	}
	return NewChain(log, steps...), nil
}
