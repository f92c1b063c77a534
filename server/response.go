package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"
	"golang.org/x/crypto/bcrypt"

	"github.com/nl2rss/nl2rss/pkg/repository"
	"github.com/nl2rss/nl2rss/pkg/storage"
)

// error types of the api responses
const (
	TypeUnexpected   = "unexpected"
	TypeNotFound     = "not_found"
	TypeValidation   = "validation"
	TypeUnauthorized = "unauthorized"
	TypeForbidden    = "forbidden"
)

// ErrorResponse is the json body of every failed api call
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Type    string   `json:"type"`
	Errors  []string `json:"errors"`
}

// DataResponse is the json body of a successful api call, mutations have no data
type DataResponse struct {
	Status int `json:"status"`
	Data   any `json:"data,omitempty"`
}

// unexpectedError is the response for anything not classified
var unexpectedError = ErrorResponse{Status: http.StatusInternalServerError, Message: "Unexpected Error.",
	Type: TypeUnexpected, Errors: []string{}}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderOK sends a data-less success response
func renderOK(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, DataResponse{Status: http.StatusOK})
}

// renderValidation sends 400 with the list of failed checks
func renderValidation(w http.ResponseWriter, r *http.Request, problems ...string) {
	RenderJSON(w, r, http.StatusBadRequest, ErrorResponse{Status: http.StatusBadRequest,
		Message: "Validation Error.", Type: TypeValidation, Errors: problems})
}

// RenderError maps err to a status and error type and sends it. Resource names the entity in
// not found messages. Unclassified errors are logged and answered with a generic 500.
func RenderError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	resp := errorResponse(err, resource)
	if resp.Status == http.StatusInternalServerError {
		lgr.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		lgr.Printf("[DEBUG] %s %s: %v", r.Method, r.URL.Path, err)
	}
	RenderJSON(w, r, resp.Status, resp)
}

func errorResponse(err error, resource string) ErrorResponse {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrorResponse{Status: http.StatusNotFound, Message: resource + " Not Found.", Type: TypeNotFound,
			Errors: []string{}}
	case errors.Is(err, repository.ErrHidden):
		return ErrorResponse{Status: http.StatusForbidden, Message: "Article is hidden.", Type: TypeForbidden,
			Errors: []string{}}
	case errors.Is(err, repository.ErrMainFeed):
		return ErrorResponse{Status: http.StatusForbidden, Message: "Can't delete main feed", Type: TypeForbidden,
			Errors: []string{}}
	case repository.IsKind(err, repository.KindUniqueConstraint):
		return ErrorResponse{Status: http.StatusConflict, Message: resource + " already exists.",
			Type: TypeValidation, Errors: []string{err.Error()}}
	case repository.IsKind(err, repository.KindValidation):
		return ErrorResponse{Status: http.StatusBadRequest, Message: "Validation Error.", Type: TypeValidation,
			Errors: []string{err.Error()}}
	case errors.Is(err, storage.ErrNotExist):
		return ErrorResponse{Status: http.StatusInternalServerError, Message: "Could not read article.",
			Type: TypeUnexpected, Errors: []string{}}
	default:
		return unexpectedError
	}
}

// basicAuth protects the api with a user and a bcrypt password hash
func basicAuth(user, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if ok && subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1 &&
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p)) == nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="nl2rss"`)
			RenderJSON(w, r, http.StatusUnauthorized, ErrorResponse{Status: http.StatusUnauthorized,
				Message: "Unauthorized.", Type: TypeUnauthorized, Errors: []string{}})
		}
		return http.HandlerFunc(fn)
	}
}

// pathID parses an integer path value
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}
