package crm

import (
	"context"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/config"
)

type Mode string

const (
	ModeMock Mode = "mock"

	// ModeRealPlaceholder marks the configured-but-unimplemented branch.
	// The external calendar's token-refresh protocol is not documented,
	// so this branch acknowledges without calling out.
	ModeRealPlaceholder Mode = "real_placeholder"
)

type Result struct {
	Mode Mode `json:"mode"`
}

// Syncer mirrors a confirmed appointment into an external calendar/CRM.
// Implementations must never block or fail the booking flow beyond
// returning an error for the caller to log.
type Syncer interface {
	Sync(ctx context.Context, appt domain.Appointment) (Result, error)
}

// Select picks the sync strategy once at composition time. Handlers and
// services never read the environment themselves.
func Select(cfg config.CalendarConfig) Syncer {
	if cfg.MockMode() {
		return NewMockRecorder()
	}
	return NewPlaceholderSyncer(cfg.ClientID)
}
