package crm_test

import (
	"context"
	"testing"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/crm"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/config"
)

func TestSelect_Strategy(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.CalendarConfig
		wantMock bool
	}{
		{"no credential", config.CalendarConfig{}, true},
		{"force mock wins", config.CalendarConfig{ClientID: "cal-1", ForceMock: true}, true},
		{"credential configured", config.CalendarConfig{ClientID: "cal-1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := crm.Select(tt.cfg)
			_, isMock := s.(*crm.MockRecorder)
			if isMock != tt.wantMock {
				t.Fatalf("Select(%+v) = %T, wantMock=%v", tt.cfg, s, tt.wantMock)
			}
		})
	}
}

func TestMockRecorder_AlwaysAcknowledges(t *testing.T) {
	m := crm.NewMockRecorder()

	appts := []domain.Appointment{
		{ID: "a1", ClientName: "Juan", Date: "2025-05-01", Time: "10:00"},
		{ID: "a1", ClientName: "Juan", Date: "2025-05-01", Time: "10:00"}, // repeated id: no dedup
		{ID: "a2", ClientName: "Ana", Date: "2026-01-10", Time: "16:45"},
	}
	for _, appt := range appts {
		res, err := m.Sync(context.Background(), appt)
		if err != nil {
			t.Fatalf("Sync: %v", err)
		}
		if res.Mode != crm.ModeMock {
			t.Fatalf("expected mode mock, got %q", res.Mode)
		}
	}
}

func TestPlaceholderSyncer_ReportsPlaceholderMode(t *testing.T) {
	p := crm.NewPlaceholderSyncer("cal-1")

	res, err := p.Sync(context.Background(), domain.Appointment{
		ID: "a1", ClientName: "Juan", Date: "2025-05-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Mode != crm.ModeRealPlaceholder {
		t.Fatalf("expected mode real_placeholder, got %q", res.Mode)
	}
}
