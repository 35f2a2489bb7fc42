package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// Store aggregates the three application partitions. One instance owns all
// application state for the lifetime of the process; tests build isolated
// instances with New.
type Store struct {
	Auth       *Partition[domain.AuthState]
	Cart       *Partition[domain.CartState]
	Onboarding *Partition[domain.OnboardingState]
}

// New builds a store whose partitions persist through sink. Pass a nil sink
// for a purely in-memory store.
func New(sink Sink, log zerolog.Logger) *Store {
	return &Store{
		Auth:       NewPartition(PartitionAuth, domain.AuthState{}, projectAuth, restoreAuth, sink, log),
		Cart:       NewPartition(PartitionCart, domain.CartState{}, projectCart, restoreCart, sink, log),
		Onboarding: NewPartition(PartitionOnboarding, domain.OnboardingState{}, projectOnboarding, restoreOnboarding, sink, log),
	}
}

// Rehydrate restores every partition from durable storage. Each partition
// fails soft independently; a corrupt blob never affects its neighbours.
func (s *Store) Rehydrate(ctx context.Context, blobs ports.BlobStore) {
	s.Auth.Rehydrate(ctx, blobs)
	s.Cart.Rehydrate(ctx, blobs)
	s.Onboarding.Rehydrate(ctx, blobs)
}

// ---------------------------------------------------------------------------
// Allow-list projections
//
// The view structs below are the exact durable format: only allow-listed
// fields appear, under the storage key names the original blobs used.
// ---------------------------------------------------------------------------

type authView struct {
	IsAuthenticated        bool                `json:"isAuthenticated"`
	HasCompletedOnboarding bool                `json:"hasCompletedOnboarding"`
	User                   *domain.UserSummary `json:"user"`
}

func projectAuth(s domain.AuthState) any {
	return authView{
		IsAuthenticated:        s.IsAuthenticated,
		HasCompletedOnboarding: s.HasCompletedOnboarding,
		User:                   s.User,
	}
}

func restoreAuth(def domain.AuthState, blob []byte) (domain.AuthState, error) {
	v := authView{
		IsAuthenticated:        def.IsAuthenticated,
		HasCompletedOnboarding: def.HasCompletedOnboarding,
		User:                   def.User,
	}
	if err := unmarshalView(blob, &v); err != nil {
		return def, err
	}
	out := def
	out.IsAuthenticated = v.IsAuthenticated
	out.HasCompletedOnboarding = v.HasCompletedOnboarding
	out.User = v.User
	return out, nil
}

type cartView struct {
	Items            []domain.CartItem `json:"items"`
	PromoCode        string            `json:"promoCode"`
	PromoDiscount    float64           `json:"promoDiscount"`
	PromoCodeApplied bool              `json:"promoCodeApplied"`
}

func projectCart(s domain.CartState) any {
	return cartView{
		Items:            s.Items,
		PromoCode:        s.Promo.Code,
		PromoDiscount:    s.Promo.Discount,
		PromoCodeApplied: s.Promo.Applied,
	}
}

func restoreCart(def domain.CartState, blob []byte) (domain.CartState, error) {
	v := cartView{
		Items:            def.Items,
		PromoCode:        def.Promo.Code,
		PromoDiscount:    def.Promo.Discount,
		PromoCodeApplied: def.Promo.Applied,
	}
	if err := unmarshalView(blob, &v); err != nil {
		return def, err
	}
	out := def
	out.Items = v.Items
	out.Promo = domain.PromoState{
		Code:     v.PromoCode,
		Discount: v.PromoDiscount,
		Applied:  v.PromoCodeApplied,
	}
	return out, nil
}

// onboardingView deliberately omits isSubmittedToBackend: the backend ack is
// transient and resets to false on every launch.
type onboardingView struct {
	BasicInfo      domain.BasicInfo      `json:"basicInfo"`
	HealthGoals    []string              `json:"healthGoals"`
	Lifestyle      domain.Lifestyle      `json:"lifestyle"`
	MedicalHistory domain.MedicalHistory `json:"medicalHistory"`
	IsComplete     bool                  `json:"isComplete"`
}

func projectOnboarding(s domain.OnboardingState) any {
	return onboardingView{
		BasicInfo:      s.BasicInfo,
		HealthGoals:    s.HealthGoals,
		Lifestyle:      s.Lifestyle,
		MedicalHistory: s.MedicalHistory,
		IsComplete:     s.IsComplete,
	}
}

func restoreOnboarding(def domain.OnboardingState, blob []byte) (domain.OnboardingState, error) {
	v := onboardingView{
		BasicInfo:      def.BasicInfo,
		HealthGoals:    def.HealthGoals,
		Lifestyle:      def.Lifestyle,
		MedicalHistory: def.MedicalHistory,
		IsComplete:     def.IsComplete,
	}
	if err := unmarshalView(blob, &v); err != nil {
		return def, err
	}
	out := def
	out.BasicInfo = v.BasicInfo
	out.HealthGoals = v.HealthGoals
	out.Lifestyle = v.Lifestyle
	out.MedicalHistory = v.MedicalHistory
	out.IsComplete = v.IsComplete
	out.IsSubmittedToBackend = false
	return out, nil
}
