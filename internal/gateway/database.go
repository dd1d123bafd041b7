package gateway

import (
	"context"
	"fmt"

	"github.com/vesaa/maderas/internal/models"
)

// InquirySaver persists inquiries. *store.Store implements it.
type InquirySaver interface {
	SaveInquiry(ctx context.Context, inq *models.Inquiry) error
}

// Database stores every inquiry it receives.
type Database struct {
	saver InquirySaver
}

func NewDatabase(saver InquirySaver) *Database {
	return &Database{saver: saver}
}

func (g *Database) Submit(ctx context.Context, inq models.Inquiry) error {
	if err := g.saver.SaveInquiry(ctx, &inq); err != nil {
		return fmt.Errorf("saving inquiry: %w", err)
	}
	return nil
}
