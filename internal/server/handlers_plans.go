package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/training"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("planType")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Plan type required")
		return
	}
	planType := models.PlanType(raw)
	if !planType.Valid() {
		writeError(w, http.StatusBadRequest, "planType must be A or B")
		return
	}

	plan, err := s.db.GetPlan(r.Context(), u.ID, planType)
	if err != nil {
		s.internalError(w, "loading plan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan": plan})
}

type savePlanRequest struct {
	PlanType  models.PlanType       `json:"planType"`
	Exercises []models.PlanExercise `json:"exercises"`
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req savePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	plan := models.WorkoutPlan{UserID: u.ID, PlanType: req.PlanType, Exercises: req.Exercises}
	if err := models.ValidatePlan(plan); err != nil {
		writeValidation(w, err)
		return
	}

	if err := s.db.UpsertPlan(r.Context(), &plan); err != nil {
		s.internalError(w, "saving plan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "plan": plan})
}

func (s *Server) handleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	now := s.now()
	planType := training.CurrentPlan(now)
	plan, err := s.db.GetPlan(r.Context(), u.ID, planType)
	if err != nil {
		s.internalError(w, "loading current plan", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"planType":      planType,
		"weekStart":     training.WeekStart(now),
		"nextWeekStart": training.NextWeekStart(now),
		"nextPlanType":  planType.Next(),
		"plan":          plan,
	})
}

func (s *Server) handlePresetExercises(w http.ResponseWriter, r *http.Request) {
	exercises := s.catalog.Exercises
	if g := r.URL.Query().Get("muscleGroup"); g != "" {
		group := models.MuscleGroup(g)
		if !group.Valid() {
			writeError(w, http.StatusBadRequest, "unknown muscle group")
			return
		}
		exercises = s.catalog.ExercisesFor(group)
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

func (s *Server) handlePresetPlan(w http.ResponseWriter, r *http.Request) {
	planType := models.PlanType(chi.URLParam(r, "type"))
	if !planType.Valid() {
		writeError(w, http.StatusBadRequest, "planType must be A or B")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"planType": planType,
		"days":     s.catalog.Days(planType),
	})
}
