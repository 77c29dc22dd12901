package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"platewise-backend/models"
	"platewise-backend/utils"

	"go.uber.org/zap"
)

const (
	draftKeyPrefix    = "registrationFormData:"
	minPasswordLength = 8
)

// FieldErrors maps a field name to its validation message. An empty map means
// the checked fields are valid.
type FieldErrors map[string]string

// RegistrationService drives the four-step signup wizard as an explicit state
// machine: account -> dietary -> allergens -> sustainability -> submitted.
// Steps advance one at a time, never skip, and nothing leaves the submitted
// state. The draft persists on every field change and is deleted only when
// submission succeeds.
type RegistrationService struct {
	store       utils.KVStore
	users       UserRepository
	log         *zap.SugaredLogger
	sendWelcome func(email, fullName string) error
}

func NewRegistrationService(store utils.KVStore, users UserRepository, log *zap.SugaredLogger) *RegistrationService {
	return &RegistrationService{
		store:       store,
		users:       users,
		log:         log,
		sendWelcome: utils.SendWelcomeEmail,
	}
}

// SetWelcomeSender overrides the post-submit email hook (tests).
func (s *RegistrationService) SetWelcomeSender(fn func(email, fullName string) error) {
	s.sendWelcome = fn
}

// Get loads the session's draft, starting a fresh one at the account step when
// nothing is stored or the stored value doesn't parse.
func (s *RegistrationService) Get(ctx context.Context, session string) *models.RegistrationDraft {
	raw, err := s.store.Get(ctx, draftKeyPrefix+session)
	if err != nil {
		if !errors.Is(err, utils.ErrKeyNotFound) {
			s.log.Warnw("failed to read registration draft", "session", session, "error", err)
		}
		return models.NewRegistrationDraft()
	}
	var draft models.RegistrationDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.log.Warnw("corrupt registration draft discarded", "session", session, "error", err)
		return models.NewRegistrationDraft()
	}
	if draft.Data == nil {
		draft.Data = map[string]interface{}{}
	}
	if draft.CurrentStep < models.StepAccount || draft.CurrentStep > models.StepSustainability {
		draft.CurrentStep = models.StepAccount
	}
	return &draft
}

// UpdateFields merges a step's field values into the draft shallowly, so
// fields owned by other steps stay put, and persists the whole draft. The
// password pair re-validates whenever either half of it changes, in either
// order. Invalid values are still stored: validation gates transitions, not
// typing.
func (s *RegistrationService) UpdateFields(ctx context.Context, session string, fields map[string]interface{}) (*models.RegistrationDraft, FieldErrors) {
	draft := s.Get(ctx, session)
	if draft.Submitted {
		return draft, FieldErrors{}
	}

	for k, v := range fields {
		draft.Data[k] = v
	}
	s.persist(ctx, session, draft)

	errs := FieldErrors{}
	if _, ok := fields["password"]; ok {
		s.validatePasswordPair(draft, errs)
	} else if _, ok := fields["confirmPassword"]; ok {
		s.validatePasswordPair(draft, errs)
	}
	return draft, errs
}

// Next validates the current step and advances on success. Validation
// failures block the transition and come back as field errors; already
// entered data is untouched. Next from the last step is a no-op.
func (s *RegistrationService) Next(ctx context.Context, session string) (*models.RegistrationDraft, FieldErrors) {
	draft := s.Get(ctx, session)
	if draft.Submitted || draft.CurrentStep >= models.StepSustainability {
		return draft, FieldErrors{}
	}

	errs := s.validateStep(draft, draft.CurrentStep)
	if len(errs) > 0 {
		return draft, errs
	}

	draft.CurrentStep++
	s.persist(ctx, session, draft)
	return draft, FieldErrors{}
}

// Back steps towards the account step without validating; the first step is
// the floor.
func (s *RegistrationService) Back(ctx context.Context, session string) *models.RegistrationDraft {
	draft := s.Get(ctx, session)
	if draft.Submitted || draft.CurrentStep <= models.StepAccount {
		return draft
	}
	draft.CurrentStep--
	s.persist(ctx, session, draft)
	return draft
}

// Complete submits the wizard. Only reachable from the last step; every step
// re-validates before the account is created. On success the stored draft is
// deleted, a JWT comes back for the new account, and the welcome email is
// attempted (failure logged, never surfaced).
func (s *RegistrationService) Complete(ctx context.Context, session string) (*models.RegistrationDraft, string, FieldErrors, error) {
	draft := s.Get(ctx, session)
	if draft.Submitted || draft.CurrentStep != models.StepSustainability {
		return draft, "", FieldErrors{}, nil
	}

	for step := models.StepAccount; step <= models.StepSustainability; step++ {
		if errs := s.validateStep(draft, step); len(errs) > 0 {
			return draft, "", errs, nil
		}
	}

	hashed, err := utils.HashPassword(draft.StringField("password"))
	if err != nil {
		return draft, "", FieldErrors{}, err
	}

	user := &models.User{
		Email:                    draft.StringField("email"),
		Password:                 hashed,
		FullName:                 draft.StringField("fullName"),
		DietType:                 draft.StringField("dietType"),
		DietaryGoals:             strings.Join(draft.StringsField("dietaryGoals"), ","),
		Allergens:                strings.Join(draft.StringsField("allergens"), ","),
		SustainabilityPriorities: strings.Join(draft.StringsField("sustainabilityPriorities"), ","),
	}
	if err := s.users.Create(user); err != nil {
		return draft, "", FieldErrors{}, err
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		return draft, "", FieldErrors{}, err
	}

	if s.sendWelcome != nil {
		if err := s.sendWelcome(user.Email, user.FullName); err != nil {
			s.log.Warnw("welcome email failed", "email", user.Email, "error", err)
		}
	}

	draft.Submitted = true
	if err := s.store.Remove(ctx, draftKeyPrefix+session); err != nil {
		s.log.Warnw("failed to delete submitted draft", "session", session, "error", err)
		// leave the draft marked submitted so a retried complete is a no-op
		// instead of a second account creation
		s.persist(ctx, session, draft)
	}

	return draft, token, FieldErrors{}, nil
}

func (s *RegistrationService) persist(ctx context.Context, session string, draft *models.RegistrationDraft) {
	data, err := json.Marshal(draft)
	if err != nil {
		s.log.Warnw("failed to encode registration draft", "error", err)
		return
	}
	if err := s.store.Set(ctx, draftKeyPrefix+session, string(data)); err != nil {
		s.log.Warnw("failed to persist registration draft", "session", session, "error", err)
	}
}

func (s *RegistrationService) validateStep(draft *models.RegistrationDraft, step int) FieldErrors {
	errs := FieldErrors{}
	switch step {
	case models.StepAccount:
		if strings.TrimSpace(draft.StringField("fullName")) == "" {
			errs["fullName"] = "Full name is required"
		}
		email := draft.StringField("email")
		if email == "" {
			errs["email"] = "Email is required"
		} else if !strings.Contains(email, "@") {
			errs["email"] = "Enter a valid email address"
		}
		if len(draft.StringField("password")) < minPasswordLength {
			errs["password"] = "Password must be at least 8 characters"
		}
		s.validatePasswordPair(draft, errs)
	case models.StepDietary:
		if draft.StringField("dietType") == "" {
			errs["dietType"] = "Select a diet type"
		}
	case models.StepAllergens, models.StepSustainability:
		// nothing required: an empty allergen or priority list is a valid answer
	}
	return errs
}

func (s *RegistrationService) validatePasswordPair(draft *models.RegistrationDraft, errs FieldErrors) {
	if draft.StringField("password") != draft.StringField("confirmPassword") {
		errs["confirmPassword"] = "Passwords do not match"
	}
}
