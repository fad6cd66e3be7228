package crm

import (
	"context"
	"fmt"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

// MockRecorder acknowledges appointments locally when no calendar
// credential is configured. It never touches the network.
type MockRecorder struct{}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

func (m *MockRecorder) Sync(ctx context.Context, appt domain.Appointment) (Result, error) {
	logger.InfoContext(ctx, fmt.Sprintf("appointment with %s on %s at %s",
		appt.ClientName, appt.Date, appt.Time),
		"appointment_id", appt.ID,
		"mode", string(ModeMock),
	)
	return Result{Mode: ModeMock}, nil
}
