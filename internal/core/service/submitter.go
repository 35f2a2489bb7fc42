package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// SimulatedOrderGateway stands in for the order-processing backend: it waits
// a fixed delay and mints an order number. Once a submission starts it always
// resolves — success, failure, or the caller's context expiring — never
// orphaned.
type SimulatedOrderGateway struct {
	delay  time.Duration
	logger zerolog.Logger
}

func NewSimulatedOrderGateway(delay time.Duration, logger zerolog.Logger) *SimulatedOrderGateway {
	return &SimulatedOrderGateway{delay: delay, logger: logger}
}

func (g *SimulatedOrderGateway) Submit(ctx context.Context, input ports.SubmitOrderInput) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(g.delay):
	}

	number := generateOrderNumber()
	g.logger.Debug().Str("order_number", number).Int("items", len(input.Items)).Msg("simulated order accepted")
	return number, nil
}

// SimulatedProfileGateway stands in for the onboarding profile backend.
type SimulatedProfileGateway struct {
	delay  time.Duration
	logger zerolog.Logger
}

func NewSimulatedProfileGateway(delay time.Duration, logger zerolog.Logger) *SimulatedProfileGateway {
	return &SimulatedProfileGateway{delay: delay, logger: logger}
}

func (g *SimulatedProfileGateway) Submit(ctx context.Context, profile domain.OnboardingState) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
	}

	g.logger.Debug().Int("health_goals", len(profile.HealthGoals)).Msg("simulated profile accepted")
	return nil
}

// generateOrderNumber returns an order number in the format ORD-XXXX-YYYY:
// a short random token combined with the current year.
func generateOrderNumber() string {
	year := time.Now().Year()
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%04d-%d", time.Now().UnixNano()%10000, year)
	}
	return fmt.Sprintf("ORD-%04d-%d", binary.BigEndian.Uint16(b)%10000, year)
}
