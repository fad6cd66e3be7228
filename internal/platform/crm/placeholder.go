package crm

import (
	"context"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

// PlaceholderSyncer stands in for the real calendar integration, which
// needs a token-refresh protocol the provider has not documented for us
// yet. It reports success with mode real_placeholder so callers can see
// which branch ran.
type PlaceholderSyncer struct {
	clientID string
}

func NewPlaceholderSyncer(clientID string) *PlaceholderSyncer {
	return &PlaceholderSyncer{clientID: clientID}
}

func (p *PlaceholderSyncer) Sync(ctx context.Context, appt domain.Appointment) (Result, error) {
	logger.WarnContext(ctx, "real calendar sync not implemented, acknowledging only",
		"appointment_id", appt.ID,
		"client_id", p.clientID,
	)
	return Result{Mode: ModeRealPlaceholder}, nil
}
