package ports

import (
	"context"

	"github.com/supfront/commerce-system/internal/core/domain"
)

// CompleteOnboardingInput carries all four sub-records confirmed at the
// summary stage.
type CompleteOnboardingInput struct {
	BasicInfo      domain.BasicInfo
	HealthGoals    []string
	Lifestyle      domain.Lifestyle
	MedicalHistory domain.MedicalHistory
}

// OnboardingService drives the linear onboarding wizard.
type OnboardingService interface {
	// Profile returns the current onboarding snapshot.
	Profile(ctx context.Context) domain.OnboardingState

	// SetBasicInfo stores the stage's sub-record after its presence guard.
	SetBasicInfo(ctx context.Context, info domain.BasicInfo) error

	// SetHealthGoals stores the selected goals; at least one is required.
	SetHealthGoals(ctx context.Context, goals []string) error

	// SetLifestyle stores the stage's sub-record after its presence guard.
	SetLifestyle(ctx context.Context, info domain.Lifestyle) error

	// SetMedicalHistory stores the stage's sub-record; it has no required fields.
	SetMedicalHistory(ctx context.Context, info domain.MedicalHistory) error

	// Complete atomically writes all four sub-records and flips IsComplete,
	// exactly once (domain.ErrAlreadyComplete afterwards). Backend submission
	// happens asynchronously and never blocks completion.
	Complete(ctx context.Context, input CompleteOnboardingInput) error

	// Reset restores the zero profile.
	Reset(ctx context.Context) error
}

// ProfileSubmitter is the external collaborator that receives the completed
// onboarding profile.
type ProfileSubmitter interface {
	Submit(ctx context.Context, profile domain.OnboardingState) error
}
