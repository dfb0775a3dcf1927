package http

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/authgate/internal/config"
	"github.com/oshokin/authgate/internal/logger"
	"github.com/oshokin/authgate/internal/utils"
)

// requestIDMiddleware assigns each request a unique ID and echoes it back.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

// bodyLimitMiddleware caps inbound request bodies at the configured size.
func bodyLimitMiddleware(maxBodySize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBodySize > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each request and, at debug level, its body.
// Login request bodies carry credentials, so bodies are only dumped for
// requests that cannot contain them.
func loggingMiddleware(maxLogLength uint64) func(http.Handler) http.Handler {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if !logger.IsDebugLevel() {
				next.ServeHTTP(w, r)

				return
			}

			bodyDump := dumpRequestBody(r, maxLogLength)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			startTime := time.Now()

			next.ServeHTTP(recorder, r)

			duration := time.Since(startTime)

			if bodyDump == "" {
				logger.Debugf(ctx, "%s %s [%d] %s", r.Method, r.URL.Path, recorder.status, duration)
			} else {
				logger.Debugf(ctx, "%s %s [%d] %s\nRequest body: %s",
					r.Method, r.URL.Path, recorder.status, duration, bodyDump)
			}
		})
	}
}

// dumpRequestBody reads and restores the request body for logging,
// skipping credential-bearing endpoints and non-text payloads.
func dumpRequestBody(r *http.Request, maxLogLength uint64) string {
	if r.Body == nil || r.URL.Path == loginPath {
		return ""
	}

	if !utils.IsTextContentType(r.Header.Get("Content-Type")) {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}

	r.Body = io.NopCloser(bytes.NewReader(body))

	return truncate(body, maxLogLength)
}

func truncate(data []byte, maxLogLength uint64) string {
	if uint64(len(data)) > maxLogLength {
		return string(data[:maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
