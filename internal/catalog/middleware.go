package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

const maxBodyBytes = 1 << 20

type ctxKey string

const createReqKey ctxKey = "create_request"

// ValidationStep inspects a request and either rejects it or passes it on,
// possibly with an enriched context.
type ValidationStep func(r *http.Request) (*http.Request, error)

func createRequestFromContext(ctx context.Context) (CreateRequest, bool) {
	req, ok := ctx.Value(createReqKey).(CreateRequest)
	return req, ok
}

// Validate runs steps in order and calls next only if all of them pass.
// The first failing step ends the request with its error.
func Validate(log *zap.Logger, steps ...ValidationStep) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}

			for _, step := range steps {
				nr, err := step(r)
				if err != nil {
					log.Debug("request rejected",
						zap.String("method", r.Method),
						zap.String("uri", r.URL.RequestURI()),
						zap.Error(err),
					)
					kit.WriteAPIError(w, r, StatusOf(err), err.Error())
					return
				}
				r = nr
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckTypeFilter validates the optional type query parameter.
func CheckTypeFilter(r *http.Request) (*http.Request, error) {
	if err := ValidateTypeFilter(r.URL.Query()); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeCreateRequest parses the JSON body into the request context. An
// empty body decodes as an empty object.
func DecodeCreateRequest(r *http.Request) (*http.Request, error) {
	var req CreateRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ValidationError{Message: msgInvalidJSON}
		}
	}
	return r.WithContext(context.WithValue(r.Context(), createReqKey, req)), nil
}

// CheckCreateRequest validates the body stored by DecodeCreateRequest.
func CheckCreateRequest(r *http.Request) (*http.Request, error) {
	req, ok := createRequestFromContext(r.Context())
	if !ok {
		return nil, &ValidationError{Message: msgMissingFields}
	}
	if err := ValidateCreate(req); err != nil {
		return nil, err
	}
	return r, nil
}
