package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/middleware"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}

func authenticatedUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return 0, false
	}
	return userID, true
}

// mapServiceErrorToHTTP translates service, repository and bracket engine
// errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var pendingErr *brackets.PendingMatchesError

	switch {
	// Not found
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrTeamNotFound),
		errors.Is(err, repositories.ErrParticipantNotFound),
		errors.Is(err, repositories.ErrChampionshipNotFound),
		errors.Is(err, repositories.ErrSubscriptionNotFound),
		errors.Is(err, repositories.ErrMatchNotFound):
		notFoundResponse(w, r)

	// Conflicts
	case errors.Is(err, repositories.ErrUserEmailConflict),
		errors.Is(err, repositories.ErrTeamNameConflict),
		errors.Is(err, repositories.ErrChampionshipNameConflict),
		errors.Is(err, repositories.ErrSubscriptionConflict),
		errors.Is(err, repositories.ErrMatchDuplicate),
		errors.Is(err, services.ErrBracketAlreadyExists),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrMatchAlreadyScored):
		conflictResponse(w, r, err.Error())

	// Validation and business rules
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrFormatMismatch),
		errors.Is(err, services.ErrWinnerNotInMatch),
		errors.Is(err, services.ErrLogoContentType),
		errors.Is(err, repositories.ErrTeamOwnerInvalid),
		errors.Is(err, repositories.ErrParticipantTeamInvalid),
		errors.Is(err, repositories.ErrChampionshipOwnerInvalid),
		errors.Is(err, repositories.ErrSubscriptionInvalid),
		errors.Is(err, repositories.ErrMatchTeamInvalid),
		errors.Is(err, repositories.ErrMatchChampionshipInvalid):
		badRequestResponse(w, r, err)

	// Bracket engine: callers can act on these, so the message is preserved.
	case errors.As(err, &pendingErr):
		errorResponse(w, r, http.StatusBadRequest, jsonResponse{
			"message":         pendingErr.Error(),
			"pending_matches": pendingErr.Matches,
		})
	case errors.Is(err, brackets.ErrInvalidBracketSize),
		errors.Is(err, brackets.ErrNoCompletedMatches),
		errors.Is(err, brackets.ErrInsufficientWinners),
		errors.Is(err, brackets.ErrOddWinnerCount),
		errors.Is(err, brackets.ErrUnrecognizedStage):
		badRequestResponse(w, r, err)
	case errors.Is(err, brackets.ErrChampionshipFinished),
		errors.Is(err, brackets.ErrAlreadyFinalized),
		errors.Is(err, brackets.ErrBracketFullyResolved),
		errors.Is(err, brackets.ErrUpperWaitingOnLower),
		errors.Is(err, brackets.ErrLowerWaitingOnUpper):
		conflictResponse(w, r, err.Error())

	// Authentication and authorization
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenInvalid),
		errors.Is(err, services.ErrTokenRevoked):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation):
		forbiddenResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
