package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// OnboardingHandler handles HTTP requests for the onboarding wizard.
type OnboardingHandler struct {
	service ports.OnboardingService
}

func NewOnboardingHandler(service ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

type basicInfoRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

type healthGoalsRequest struct {
	Goals []string `json:"goals"`
}

type lifestyleRequest struct {
	ActivityLevel       string `json:"activity_level"`
	SleepHours          int    `json:"sleep_hours"`
	StressLevel         int    `json:"stress_level"`
	Diet                string `json:"diet"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

type medicalHistoryRequest struct {
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Supplements []string `json:"supplements"`
}

type completeOnboardingRequest struct {
	BasicInfo      basicInfoRequest      `json:"basic_info"`
	HealthGoals    []string              `json:"health_goals"`
	Lifestyle      lifestyleRequest      `json:"lifestyle"`
	MedicalHistory medicalHistoryRequest `json:"medical_history"`
}

type onboardingResponse struct {
	BasicInfo            domain.BasicInfo      `json:"basic_info"`
	HealthGoals          []string              `json:"health_goals"`
	Lifestyle            domain.Lifestyle      `json:"lifestyle"`
	MedicalHistory       domain.MedicalHistory `json:"medical_history"`
	NextStage            string                `json:"next_stage"`
	IsComplete           bool                  `json:"is_complete"`
	IsSubmittedToBackend bool                  `json:"is_submitted_to_backend"`
}

func toOnboardingResponse(s domain.OnboardingState) onboardingResponse {
	return onboardingResponse{
		BasicInfo:            s.BasicInfo,
		HealthGoals:          s.HealthGoals,
		Lifestyle:            s.Lifestyle,
		MedicalHistory:       s.MedicalHistory,
		NextStage:            string(s.NextStage()),
		IsComplete:           s.IsComplete,
		IsSubmittedToBackend: s.IsSubmittedToBackend,
	}
}

// Get handles GET /v1/onboarding.
//
// @Summary      Get the onboarding profile and next stage
// @Tags         onboarding
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  onboardingResponse
// @Router       /v1/onboarding [get]
func (h *OnboardingHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}

// SetBasicInfo handles PUT /v1/onboarding/basic-info.
//
// @Summary      Save the basic-info stage
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      basicInfoRequest  true  "Basic info"
// @Success      200   {object}  onboardingResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/onboarding/basic-info [put]
func (h *OnboardingHandler) SetBasicInfo(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req basicInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetBasicInfo(c.Request().Context(), domain.BasicInfo{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}

// SetHealthGoals handles PUT /v1/onboarding/health-goals.
//
// @Summary      Save the health-goals stage
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      healthGoalsRequest  true  "Selected goals"
// @Success      200   {object}  onboardingResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/onboarding/health-goals [put]
func (h *OnboardingHandler) SetHealthGoals(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req healthGoalsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetHealthGoals(c.Request().Context(), req.Goals); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}

// SetLifestyle handles PUT /v1/onboarding/lifestyle.
//
// @Summary      Save the lifestyle stage
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      lifestyleRequest  true  "Lifestyle details"
// @Success      200   {object}  onboardingResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/onboarding/lifestyle [put]
func (h *OnboardingHandler) SetLifestyle(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req lifestyleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetLifestyle(c.Request().Context(), domain.Lifestyle{
		ActivityLevel:       req.ActivityLevel,
		SleepHours:          req.SleepHours,
		StressLevel:         req.StressLevel,
		Diet:                req.Diet,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}

// SetMedicalHistory handles PUT /v1/onboarding/medical-history.
//
// @Summary      Save the medical-history stage
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      medicalHistoryRequest  true  "Medical history"
// @Success      200   {object}  onboardingResponse
// @Router       /v1/onboarding/medical-history [put]
func (h *OnboardingHandler) SetMedicalHistory(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req medicalHistoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetMedicalHistory(c.Request().Context(), domain.MedicalHistory{
		Conditions:  req.Conditions,
		Medications: req.Medications,
		Supplements: req.Supplements,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}

// Complete handles POST /v1/onboarding/complete.
//
// @Summary      Confirm the summary and complete onboarding
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      completeOnboardingRequest  true  "Full profile"
// @Success      200   {object}  onboardingResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/onboarding/complete [post]
func (h *OnboardingHandler) Complete(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req completeOnboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.Complete(c.Request().Context(), ports.CompleteOnboardingInput{
		BasicInfo: domain.BasicInfo{
			Name:   req.BasicInfo.Name,
			Age:    req.BasicInfo.Age,
			Gender: req.BasicInfo.Gender,
			Height: req.BasicInfo.Height,
			Weight: req.BasicInfo.Weight,
		},
		HealthGoals: req.HealthGoals,
		Lifestyle: domain.Lifestyle{
			ActivityLevel:       req.Lifestyle.ActivityLevel,
			SleepHours:          req.Lifestyle.SleepHours,
			StressLevel:         req.Lifestyle.StressLevel,
			Diet:                req.Lifestyle.Diet,
			DietaryRestrictions: req.Lifestyle.DietaryRestrictions,
		},
		MedicalHistory: domain.MedicalHistory{
			Conditions:  req.MedicalHistory.Conditions,
			Medications: req.MedicalHistory.Medications,
			Supplements: req.MedicalHistory.Supplements,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOnboardingResponse(h.service.Profile(c.Request().Context())))
}
