package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
	"github.com/supfront/commerce-system/internal/store"
)

// ---------------------------------------------------------------------------
// In-memory stub submitter
// ---------------------------------------------------------------------------

type stubProfileSubmitter struct {
	mu       sync.Mutex
	err      error
	release  chan struct{} // if set, Submit blocks until closed
	profiles []domain.OnboardingState
}

func (s *stubProfileSubmitter) Submit(ctx context.Context, profile domain.OnboardingState) error {
	s.mu.Lock()
	s.profiles = append(s.profiles, profile)
	release := s.release
	err := s.err
	s.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newOnboardingFixture() (*OnboardingService, *store.Store, *stubProfileSubmitter) {
	st := store.New(nil, discardLogger)
	submitter := &stubProfileSubmitter{}
	return NewOnboardingService(st, submitter, discardLogger), st, submitter
}

func completeInput() ports.CompleteOnboardingInput {
	return ports.CompleteOnboardingInput{
		BasicInfo:   domain.BasicInfo{Name: "Ana", Age: 31, Gender: "female"},
		HealthGoals: []string{"energy", "sleep"},
		Lifestyle:   domain.Lifestyle{ActivityLevel: "moderate", Diet: "omnivore"},
		MedicalHistory: domain.MedicalHistory{
			Supplements: []string{"vitamin d"},
		},
	}
}

// waitForSubmitFlag blocks until IsSubmittedToBackend flips or the timeout hits.
func waitForSubmitFlag(t *testing.T, st *store.Store) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if st.Onboarding.Snapshot().IsSubmittedToBackend {
			return
		}
		select {
		case <-deadline:
			t.Fatal("IsSubmittedToBackend never flipped")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

// ---------------------------------------------------------------------------
// Stage setter tests
// ---------------------------------------------------------------------------

func TestOnboardingService_SetBasicInfo_PresenceGuard(t *testing.T) {
	svc, st, _ := newOnboardingFixture()
	ctx := context.Background()

	if err := svc.SetBasicInfo(ctx, domain.BasicInfo{Name: "", Age: 30}); !errors.Is(err, domain.ErrStageIncomplete) {
		t.Errorf("missing name: expected ErrStageIncomplete, got %v", err)
	}
	if err := svc.SetBasicInfo(ctx, domain.BasicInfo{Name: "Ana", Age: 0}); !errors.Is(err, domain.ErrStageIncomplete) {
		t.Errorf("zero age: expected ErrStageIncomplete, got %v", err)
	}

	if err := svc.SetBasicInfo(ctx, domain.BasicInfo{Name: "Ana", Age: 31}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := st.Onboarding.Snapshot().BasicInfo.Name; got != "Ana" {
		t.Errorf("basic info not stored, got name %q", got)
	}
}

func TestOnboardingService_SetHealthGoals_RequiresOne(t *testing.T) {
	svc, _, _ := newOnboardingFixture()
	ctx := context.Background()

	if err := svc.SetHealthGoals(ctx, nil); !errors.Is(err, domain.ErrStageIncomplete) {
		t.Errorf("expected ErrStageIncomplete, got %v", err)
	}
	if err := svc.SetHealthGoals(ctx, []string{"energy"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOnboardingService_SetLifestyle_PresenceGuard(t *testing.T) {
	svc, _, _ := newOnboardingFixture()
	ctx := context.Background()

	if err := svc.SetLifestyle(ctx, domain.Lifestyle{ActivityLevel: "moderate"}); !errors.Is(err, domain.ErrStageIncomplete) {
		t.Errorf("missing diet: expected ErrStageIncomplete, got %v", err)
	}
	if err := svc.SetLifestyle(ctx, domain.Lifestyle{ActivityLevel: "moderate", Diet: "vegan"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOnboardingService_SetMedicalHistory_NoRequiredFields(t *testing.T) {
	svc, st, _ := newOnboardingFixture()

	if err := svc.SetMedicalHistory(context.Background(), domain.MedicalHistory{}); err != nil {
		t.Fatalf("empty medical history must be accepted: %v", err)
	}
	if st.Onboarding.Snapshot().IsComplete {
		t.Error("setters must not flip completion")
	}
}

func TestOnboardingService_NextStageProgression(t *testing.T) {
	svc, st, _ := newOnboardingFixture()
	ctx := context.Background()

	if got := st.Onboarding.Snapshot().NextStage(); got != domain.StageBasicInfo {
		t.Fatalf("fresh profile should start at basic info, got %s", got)
	}

	_ = svc.SetBasicInfo(ctx, domain.BasicInfo{Name: "Ana", Age: 31})
	if got := st.Onboarding.Snapshot().NextStage(); got != domain.StageHealthGoals {
		t.Errorf("expected health goals next, got %s", got)
	}

	_ = svc.SetHealthGoals(ctx, []string{"energy"})
	if got := st.Onboarding.Snapshot().NextStage(); got != domain.StageLifestyle {
		t.Errorf("expected lifestyle next, got %s", got)
	}

	_ = svc.SetLifestyle(ctx, domain.Lifestyle{ActivityLevel: "moderate", Diet: "omnivore"})
	if got := st.Onboarding.Snapshot().NextStage(); got != domain.StageSummary {
		t.Errorf("medical history is optional, expected summary next, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// Complete tests
// ---------------------------------------------------------------------------

func TestOnboardingService_Complete_ValidatesInput(t *testing.T) {
	svc, st, _ := newOnboardingFixture()
	ctx := context.Background()

	input := completeInput()
	input.HealthGoals = nil
	if err := svc.Complete(ctx, input); !errors.Is(err, domain.ErrStageIncomplete) {
		t.Fatalf("expected ErrStageIncomplete, got %v", err)
	}
	if st.Onboarding.Snapshot().IsComplete {
		t.Error("rejected completion must not flip the flag")
	}
}

func TestOnboardingService_Complete_FlipsFlagsSynchronously(t *testing.T) {
	svc, st, submitter := newOnboardingFixture()
	ctx := context.Background()

	// Hold the backend call open: completion must not wait for it.
	submitter.release = make(chan struct{})
	defer close(submitter.release)

	if err := svc.Complete(ctx, completeInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := st.Onboarding.Snapshot()
	if !profile.IsComplete {
		t.Error("IsComplete must flip before the backend answers")
	}
	if profile.IsSubmittedToBackend {
		t.Error("IsSubmittedToBackend must stay false until the backend acks")
	}
	if !st.Auth.Snapshot().HasCompletedOnboarding {
		t.Error("auth partition onboarding flag must flip with completion")
	}
}

func TestOnboardingService_Complete_ExactlyOnce(t *testing.T) {
	svc, _, _ := newOnboardingFixture()
	ctx := context.Background()

	if err := svc.Complete(ctx, completeInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Complete(ctx, completeInput()); !errors.Is(err, domain.ErrAlreadyComplete) {
		t.Fatalf("expected ErrAlreadyComplete, got %v", err)
	}
}

func TestOnboardingService_Complete_BackendAckFlipsSubmittedFlag(t *testing.T) {
	svc, st, _ := newOnboardingFixture()

	if err := svc.Complete(context.Background(), completeInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForSubmitFlag(t, st)
}

func TestOnboardingService_Complete_BackendFailureIsInvisible(t *testing.T) {
	svc, st, submitter := newOnboardingFixture()
	submitted := make(chan struct{})
	submitter.err = errors.New("backend down")
	submitter.release = submitted
	close(submitted)

	if err := svc.Complete(context.Background(), completeInput()); err != nil {
		t.Fatalf("backend failure must not surface: %v", err)
	}

	// Give the async submission a moment to resolve, then confirm the flag
	// stayed down while completion held.
	time.Sleep(50 * time.Millisecond)
	profile := st.Onboarding.Snapshot()
	if !profile.IsComplete {
		t.Error("IsComplete must hold despite backend failure")
	}
	if profile.IsSubmittedToBackend {
		t.Error("IsSubmittedToBackend must not flip on failure")
	}
}

func TestOnboardingService_Reset(t *testing.T) {
	svc, st, _ := newOnboardingFixture()
	ctx := context.Background()

	if err := svc.Complete(ctx, completeInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := st.Onboarding.Snapshot()
	if profile.IsComplete || len(profile.HealthGoals) != 0 {
		t.Errorf("profile not reset: %+v", profile)
	}
}
