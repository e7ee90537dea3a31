package controllers

import (
	"net/http"
	"strings"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/api/validators"
	authsvc "github.com/marivelle/catalog-backend/internal/auth"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges credentials for a bearer token. The endpoint accepts both
// a JSON body and the OAuth2-style form encoding (username/password) older
// clients send.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		email, password, err := loginCredentials(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), email, password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, token)
	}
}

type refreshRequest struct {
	Token string `json:"token"`
}

// Refresh renews an access token. The token may arrive in the JSON body or
// as a bearer header; expired tokens are accepted when the signature holds.
func Refresh(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload refreshRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			payload.Token = ""
		}
		token := strings.TrimSpace(payload.Token)
		if token == "" {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				token = strings.TrimSpace(raw[7:])
			}
		}
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "token is required"))
			return
		}

		fresh, err := svc.Refresh(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, fresh)
	}
}

func loginCredentials(r *http.Request) (string, string, error) {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if strings.Contains(contentType, "application/x-www-form-urlencoded") || strings.Contains(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			return "", "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
		}
		email := strings.TrimSpace(r.FormValue("username"))
		if email == "" {
			email = strings.TrimSpace(r.FormValue("email"))
		}
		password := r.FormValue("password")
		if email == "" || password == "" {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
		}
		return email, password, nil
	}

	var payload loginRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(payload.Email), payload.Password, nil
}
