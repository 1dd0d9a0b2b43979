package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	bcryptCost        = 10
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ExperienceLevel string `json:"experienceLevel"`
}

func (req registerRequest) validate() error {
	var errs models.ValidationErrors
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, models.FieldError{Path: "name", Message: "is required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil || strings.ContainsAny(req.Email, "<> ") {
		errs = append(errs, models.FieldError{Path: "email", Message: "must be a valid email address"})
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, models.FieldError{Path: "password", Message: "must be at least 6 characters"})
	}
	if !models.ExperienceLevel(req.ExperienceLevel).Valid() {
		errs = append(errs, models.FieldError{Path: "experienceLevel", Message: "must be one of beginner, intermediate, advanced"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeValidation(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.internalError(w, "hashing password", err)
		return
	}

	u := models.User{
		Email:           strings.ToLower(req.Email),
		Name:            strings.TrimSpace(req.Name),
		PasswordHash:    string(hash),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
	}
	err = s.db.CreateUser(r.Context(), &u)
	if errors.Is(err, storage.ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.internalError(w, "creating user", err)
		return
	}

	s.log.Info("user registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
