package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/minjae/jobbridge/internal/wizard"
)

// maxBodyBytes caps request bodies read through readBody
const maxBodyBytes = 1 << 20

// readBody reads a request body with a size cap
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeViolations writes a 422 carrying every field violation at once, so
// clients can render all of them instead of fixing one per round trip
func writeViolations(w http.ResponseWriter, violations wizard.Violations) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":      "validation failed",
		"violations": violations.Violations,
	})
}

// validateRequest validates a request struct against its tags and writes the
// full violation list on failure. Returns true when the request is valid.
func (s *Server) validateRequest(w http.ResponseWriter, req any) bool {
	violations, err := wizard.ValidateDelta(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Validation failed")
		return false
	}
	if !violations.Empty() {
		writeViolations(w, violations)
		return false
	}
	return true
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}
