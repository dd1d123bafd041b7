// Package gateway implements the contact-submission backends. Each type
// satisfies site.Gateway structurally: Submit(ctx, models.Inquiry) error.
//
// A deployment composes them with Chain, for example a fixed delay followed
// by a database write and a webhook to the CRM.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vesaa/maderas/internal/models"
)

// Submitter is one submission step.
type Submitter interface {
	Submit(ctx context.Context, inq models.Inquiry) error
}

// Step names a Submitter inside a Chain.
type Step struct {
	Name string
	Submitter
}

// Chain runs its steps in order and stops at the first fault.
type Chain struct {
	steps []Step
	log   *slog.Logger
}

// NewChain composes steps. An empty chain accepts every inquiry.
func NewChain(log *slog.Logger, steps ...Step) *Chain {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Chain{steps: steps, log: log}
}

// Steps lists the step names in order.
func (c *Chain) Steps() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.Name
	}
	return names
}

func (c *Chain) Submit(ctx context.Context, inq models.Inquiry) error {
	for _, s := range c.steps {
		start := time.Now()
		if err := s.Submit(ctx, inq); err != nil {
			c.log.Warn("gateway step failed",
				slog.String("step", s.Name),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("error", err))
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		c.log.Debug("gateway step done",
			slog.String("step", s.Name),
			slog.Duration("elapsed", time.Since(start)))
	}
	return nil
}
