package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/api/metrics"
	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
	"github.com/supfront/commerce-system/internal/store"
)

const profileSubmitTimeout = 30 * time.Second

// OnboardingService drives the linear onboarding wizard over the onboarding
// partition. Each stage writes its own sub-record; the summary confirmation
// writes all four atomically and flips the completion flag exactly once.
type OnboardingService struct {
	store     *store.Store
	submitter ports.ProfileSubmitter
	logger    zerolog.Logger
}

func NewOnboardingService(st *store.Store, submitter ports.ProfileSubmitter, logger zerolog.Logger) *OnboardingService {
	return &OnboardingService{store: st, submitter: submitter, logger: logger}
}

// Profile returns the current onboarding snapshot.
func (s *OnboardingService) Profile(ctx context.Context) domain.OnboardingState {
	return s.store.Onboarding.Snapshot()
}

// SetBasicInfo stores the basic-info sub-record after its presence guard.
func (s *OnboardingService) SetBasicInfo(ctx context.Context, info domain.BasicInfo) error {
	if !info.Complete() {
		return domain.ErrStageIncomplete
	}
	_, err := s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		st.BasicInfo = info
		return st, nil
	})
	return err
}

// SetHealthGoals stores the selected goals; at least one is required.
func (s *OnboardingService) SetHealthGoals(ctx context.Context, goals []string) error {
	if len(goals) == 0 {
		return domain.ErrStageIncomplete
	}
	_, err := s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		st.HealthGoals = append([]string(nil), goals...)
		return st, nil
	})
	return err
}

// SetLifestyle stores the lifestyle sub-record after its presence guard.
func (s *OnboardingService) SetLifestyle(ctx context.Context, info domain.Lifestyle) error {
	if !info.Complete() {
		return domain.ErrStageIncomplete
	}
	_, err := s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		st.Lifestyle = info
		return st, nil
	})
	return err
}

// SetMedicalHistory stores the medical-history sub-record. The stage has no
// required fields; empty lists are fine.
func (s *OnboardingService) SetMedicalHistory(ctx context.Context, info domain.MedicalHistory) error {
	_, err := s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		st.MedicalHistory = info
		return st, nil
	})
	return err
}

// Complete confirms the summary: one atomic dispatch sets all four
// sub-records and IsComplete, which flips exactly once. The auth partition's
// onboarding flag follows. Backend submission then happens asynchronously —
// its outcome is recorded in IsSubmittedToBackend and never blocks the caller.
func (s *OnboardingService) Complete(ctx context.Context, input ports.CompleteOnboardingInput) error {
	if !input.BasicInfo.Complete() || len(input.HealthGoals) == 0 || !input.Lifestyle.Complete() {
		return domain.ErrStageIncomplete
	}

	profile, err := s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		if st.IsComplete {
			return st, domain.ErrAlreadyComplete
		}
		return domain.OnboardingState{
			BasicInfo:      input.BasicInfo,
			HealthGoals:    append([]string(nil), input.HealthGoals...),
			Lifestyle:      input.Lifestyle,
			MedicalHistory: input.MedicalHistory,
			IsComplete:     true,
		}, nil
	})
	if err != nil {
		return err
	}

	_, _ = s.store.Auth.Dispatch(func(st domain.AuthState) (domain.AuthState, error) {
		st.HasCompletedOnboarding = true
		return st, nil
	})

	metrics.OnboardingCompletedTotal.Inc()
	s.logger.Info().Int("health_goals", len(profile.HealthGoals)).Msg("onboarding completed")

	go s.submitProfile(profile)
	return nil
}

// Reset restores the zero profile.
func (s *OnboardingService) Reset(ctx context.Context) error {
	_, err := s.store.Onboarding.Dispatch(func(domain.OnboardingState) (domain.OnboardingState, error) {
		return domain.OnboardingState{}, nil
	})
	return err
}

// submitProfile runs off the caller's goroutine: a failed backend submission
// is logged and retried never — the user keeps navigating regardless.
func (s *OnboardingService) submitProfile(profile domain.OnboardingState) {
	ctx, cancel := context.WithTimeout(context.Background(), profileSubmitTimeout)
	defer cancel()

	if err := s.submitter.Submit(ctx, profile); err != nil {
		metrics.OnboardingSubmissionsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Err(err).Msg("onboarding backend submission failed")
		return
	}

	_, _ = s.store.Onboarding.Dispatch(func(st domain.OnboardingState) (domain.OnboardingState, error) {
		st.IsSubmittedToBackend = true
		return st, nil
	})
	metrics.OnboardingSubmissionsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Msg("onboarding profile submitted to backend")
}
