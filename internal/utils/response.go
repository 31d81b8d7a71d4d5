package utils

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ContentTypeMsgpack is honoured in the Accept header as an alternative to JSON
const ContentTypeMsgpack = "application/msgpack"

// Envelope is the shape of every API response body
type Envelope struct {
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata accompanies every response
type Metadata struct {
	Timestamp string `json:"timestamp"`
}

// WantsMsgpack reports whether the client asked for a msgpack body
func WantsMsgpack(r *http.Request) bool {
	return r != nil && strings.Contains(r.Header.Get("Accept"), ContentTypeMsgpack)
}

// WriteData wraps data in the response envelope and writes it
func WriteData(w http.ResponseWriter, r *http.Request, status int, data interface{}, log zerolog.Logger) {
	write(w, r, status, Envelope{Data: data, Metadata: newMetadata()}, log)
}

// WriteError writes an error envelope with the given status
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string, log zerolog.Logger) {
	write(w, r, status, Envelope{Error: message, Metadata: newMetadata()}, log)
}

func newMetadata() Metadata {
	return Metadata{Timestamp: time.Now().Format(time.RFC3339)}
}

func write(w http.ResponseWriter, r *http.Request, status int, body Envelope, log zerolog.Logger) {
	if WantsMsgpack(r) {
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)

		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(body); err != nil {
			log.Error().Err(err).Msg("Failed to encode msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
