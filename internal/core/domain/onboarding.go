package domain

import "errors"

var ErrAlreadyComplete = errors.New("onboarding already completed")

// OnboardingStage identifies one step of the onboarding wizard.
type OnboardingStage string

const (
	StageBasicInfo      OnboardingStage = "basic_info"
	StageHealthGoals    OnboardingStage = "health_goals"
	StageLifestyle      OnboardingStage = "lifestyle"
	StageMedicalHistory OnboardingStage = "medical_history"
	StageSummary        OnboardingStage = "summary"
)

// BasicInfo is the first onboarding sub-record.
type BasicInfo struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

// Complete reports whether the stage's minimum required fields are present.
func (b BasicInfo) Complete() bool {
	return b.Name != "" && b.Age >= 1
}

// Lifestyle is the third onboarding sub-record.
type Lifestyle struct {
	ActivityLevel       string `json:"activity_level"`
	SleepHours          int    `json:"sleep_hours"`
	StressLevel         int    `json:"stress_level"`
	Diet                string `json:"diet"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

// Complete reports whether the stage's minimum required fields are present.
func (l Lifestyle) Complete() bool {
	return l.ActivityLevel != "" && l.Diet != ""
}

// MedicalHistory is the fourth onboarding sub-record. All lists may be empty;
// the stage has no required fields.
type MedicalHistory struct {
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Supplements []string `json:"supplements"`
}

// OnboardingState is the onboarding partition's full state. IsComplete flips
// exactly once, at the final summary confirmation. IsSubmittedToBackend flips
// only after the profile submission collaborator acknowledges success.
type OnboardingState struct {
	BasicInfo            BasicInfo      `json:"basic_info"`
	HealthGoals          []string       `json:"health_goals"`
	Lifestyle            Lifestyle      `json:"lifestyle"`
	MedicalHistory       MedicalHistory `json:"medical_history"`
	IsComplete           bool           `json:"is_complete"`
	IsSubmittedToBackend bool           `json:"is_submitted_to_backend"`
}

// NextStage returns the first stage whose guard is not yet satisfied, or
// StageSummary once every earlier stage has its minimum fields.
func (s OnboardingState) NextStage() OnboardingStage {
	switch {
	case !s.BasicInfo.Complete():
		return StageBasicInfo
	case len(s.HealthGoals) == 0:
		return StageHealthGoals
	case !s.Lifestyle.Complete():
		return StageLifestyle
	default:
		// Medical history has no required fields, so once lifestyle is done
		// the profile is ready for the summary confirmation.
		return StageSummary
	}
}
