package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"parfumai/internal/auth"
	applog "parfumai/internal/log"
	"parfumai/internal/recipe"
	"parfumai/internal/store"
)

const (
	maxBodyBytes = 1 << 20

	genericErrorMessage = "Something went wrong. Please try again."
)

// Dependencies are the collaborators shared by the HTTP handlers.
type Dependencies struct {
	Sessions *scs.SessionManager
	Stores   store.Selector
	Recipes  *recipe.Service
	Verifier auth.Verifier
	// Users backs signup. Nil disables account creation.
	Users         *gorm.DB
	SignupEnabled bool
}

var (
	sessionManager *scs.SessionManager
	stores         store.Selector
	recipes        *recipe.Service
	verifier       auth.Verifier
	userDatabase   *gorm.DB
	signupEnabled  bool

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	stores = deps.Stores
	recipes = deps.Recipes
	verifier = deps.Verifier
	userDatabase = deps.Users
	signupEnabled = deps.SignupEnabled
}

// storeFor returns the store serving the current request.
func storeFor(r *http.Request) (store.Store, store.Backend) {
	principal, _ := currentPrincipal(r)
	return stores.For(principal.ID)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body must not be empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps persistence failures onto responses. Anything but a
// missing record is logged and reported generically.
func writeStoreError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	applog.Error(r.Context(), "persistence operation failed", "action", action, "error", err)
	writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	first := fieldErrs[0]
	return fmt.Sprintf("%s is invalid (%s)", first.Field(), first.Tag())
}
