package handlers

import (
	"errors"
	"net/http"
	"strings"

	"parfumai/internal/auth"
	applog "parfumai/internal/log"
	"parfumai/internal/store"
)

const (
	sessionAuthenticatedKey = "auth:authenticated"
	sessionUserIDKey        = "auth:user:id"
	sessionUserEmailKey     = "auth:user:email"
	sessionUserNameKey      = "auth:user:name"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type sessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	User          *auth.Principal        `json:"user,omitempty"`
	Backend       store.Backend          `json:"backend"`
	SignupEnabled bool                   `json:"signupEnabled"`
	Migrated      *store.MigrationReport `json:"migrated,omitempty"`
}

// currentPrincipal returns the principal stored in the session.
func currentPrincipal(r *http.Request) (auth.Principal, bool) {
	if sessionManager == nil {
		return auth.Principal{}, false
	}
	ctx := r.Context()
	if !sessionManager.GetBool(ctx, sessionAuthenticatedKey) {
		return auth.Principal{}, false
	}
	id := sessionManager.GetString(ctx, sessionUserIDKey)
	if id == "" {
		return auth.Principal{}, false
	}
	return auth.Principal{
		ID:    id,
		Name:  sessionManager.GetString(ctx, sessionUserNameKey),
		Email: sessionManager.GetString(ctx, sessionUserEmailKey),
	}, true
}

// ActiveSession returns true when the current request has an authenticated session.
func ActiveSession(r *http.Request) bool {
	_, ok := currentPrincipal(r)
	return ok
}

func signupAvailable() bool {
	return signupEnabled && userDatabase != nil
}

// Session reports the authentication state and the backend serving data.
func Session(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(r)
	_, backend := storeFor(r)
	resp := sessionResponse{Authenticated: ok, Backend: backend, SignupEnabled: signupAvailable()}
	if ok {
		resp.User = &principal
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login verifies credentials, moves anonymous data into the account and
// marks the session authenticated. A failed login leaves the session untouched.
func Login(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil || verifier == nil {
		applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasVerifier", verifier != nil)
		writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	principal, err := verifier.Verify(r.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			applog.Debug(r.Context(), "authentication failed", "identifier", strings.ToLower(identifier))
			writeJSONError(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		applog.Error(r.Context(), "failed to verify credentials", "error", err)
		writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	completeLogin(w, r, principal, http.StatusOK)
}

// Signup creates a database account and signs it in.
func Signup(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil || !signupAvailable() {
		writeJSONError(w, http.StatusForbidden, "signup is disabled")
		return
	}

	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	principal, err := auth.Signup(r.Context(), userDatabase, req.Email, req.Name, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeJSONError(w, http.StatusConflict, "An account with that email already exists.")
		return
	case err != nil:
		applog.Error(r.Context(), "failed to create user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	applog.Info(r.Context(), "user signed up", "user", principal.ID)
	completeLogin(w, r, principal, http.StatusCreated)
}

func completeLogin(w http.ResponseWriter, r *http.Request, principal auth.Principal, status int) {
	ctx := r.Context()

	if err := sessionManager.RenewToken(ctx); err != nil {
		applog.Error(ctx, "failed to renew session token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
		return
	}
	sessionManager.Put(ctx, sessionAuthenticatedKey, true)
	sessionManager.Put(ctx, sessionUserIDKey, principal.ID)
	sessionManager.Put(ctx, sessionUserEmailKey, principal.Email)
	sessionManager.Put(ctx, sessionUserNameKey, principal.Name)

	// Local data moves only once the session is bound to the principal.
	var migrated *store.MigrationReport
	if stores.HostedEnabled() {
		hosted, _ := stores.For(principal.ID)
		report, err := store.Migrate(ctx, stores.Local, hosted)
		if err != nil {
			applog.Error(ctx, "failed to migrate local data", "user", principal.ID, "error", err)
		}
		migrated = &report
	}

	_, backend := stores.For(principal.ID)
	applog.Info(ctx, "user signed in", "user", principal.ID, "backend", string(backend))
	writeJSON(w, status, sessionResponse{
		Authenticated: true,
		User:          &principal,
		Backend:       backend,
		SignupEnabled: signupAvailable(),
		Migrated:      migrated,
	})
}

// Logout destroys the current session.
func Logout(w http.ResponseWriter, r *http.Request) {
	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
			writeJSONError(w, http.StatusInternalServerError, genericErrorMessage)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
