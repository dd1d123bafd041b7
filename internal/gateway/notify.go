package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/vesaa/maderas/internal/models"
)

// Notify announces each inquiry on the configured shoutrrr services
// (Telegram, Slack, SMTP, ...).
type Notify struct {
	send func(message string, params *stypes.Params) []error
}

// NewNotify builds a sender for urls. Invalid URLs fail here rather than on
// the first submission.
func NewNotify(urls []string, timeout time.Duration) (*Notify, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("at least one notify URL is required")
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("creating notify sender: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))
	return &Notify{send: sender.Send}, nil
}

// Submit sends the notification. shoutrrr takes no context, so a cancelled
// ctx abandons the wait while the send itself stays bounded by the sender's
// Timeout.
func (g *Notify) Submit(ctx context.Context, inq models.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := stypes.Params{}
	params.SetTitle("Nueva solicitud de contacto: " + inq.Name)
	msg := FormatNotification(inq)

	done := make(chan []error, 1)
	go func() { done <- g.send(msg, &params) }()

	select {
	case errs := <-done:
		for _, err := range errs {
			if err != nil {
				return fmt.Errorf("sending notification: %w", err)
			}
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending notification: %w", ctx.Err())
	}
}

// FormatNotification renders an inquiry as a plain-text message.
func FormatNotification(inq models.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", inq.Name)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	if inq.Phone != "" {
		fmt.Fprintf(&b, "Teléfono: %s\n", inq.Phone)
	}
	if inq.WoodType != "" {
		fmt.Fprintf(&b, "Tipo de madera: %s\n", inq.WoodType)
	}
	fmt.Fprintf(&b, "\n%s", inq.Message)
	return b.String()
}
