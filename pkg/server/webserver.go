/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"encoding/json"
	"net/http"

	"github.com/codenotary/sap/pkg/auth"
	"github.com/codenotary/sap/pkg/runner"
)

// statusResponse flattens the runner snapshot and the cache size into the
// single flat document served by /status.
type statusResponse struct {
	*runner.Status
	Count int `json:"count"`
}

func (s *SAPServer) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", instrument("root", http.HandlerFunc(s.handleServiceCard)))
	mux.Handle("/hello", instrument("hello", http.HandlerFunc(s.handleHello)))
	mux.Handle("/all_data", instrument("all_data", http.HandlerFunc(s.handleAllData)))
	mux.Handle("/health", instrument("health", http.HandlerFunc(s.handleHealth)))
	mux.Handle("/status", instrument("status", http.HandlerFunc(s.handleStatus)))
	mux.Handle("/refresh", instrument("refresh", http.HandlerFunc(s.handleRefresh)))

	uuidContext := NewUUIDContext(s.UUID)
	return uuidContext.UUIDSetter(mux)
}

// instrument counts handled requests per endpoint.
func instrument(handler string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Metrics.UpdateHTTPMetrics(handler)
		next.ServeHTTP(w, r)
	})
}

func (s *SAPServer) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Errorf("Error writing response: %v", err)
	}
}

func (s *SAPServer) methodIsGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	return true
}

// handleServiceCard answers / with the endpoint listing the shell displays.
// Every other path lands here too, those get a 404.
func (s *SAPServer) handleServiceCard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if !s.methodIsGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": s.Options.ProviderName,
		"endpoints": map[string]string{
			"/hello":    "Provider information",
			"/all_data": "All SAObject data",
			"/health":   "Health probe",
			"/status":   "Runner status",
		},
		"status": "running",
	})
}

func (s *SAPServer) handleHello(w http.ResponseWriter, r *http.Request) {
	if !s.methodIsGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.ProviderInfo())
}

func (s *SAPServer) handleAllData(w http.ResponseWriter, r *http.Request) {
	if !s.methodIsGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Runner.Cached())
}

func (s *SAPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.methodIsGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"count":  s.Runner.Count(),
	})
}

func (s *SAPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.methodIsGet(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, &statusResponse{
		Status: s.Runner.Status(),
		Count:  s.Runner.Count(),
	})
}

// handleRefresh triggers an out of schedule refresh. When a refresh token is
// configured the request must carry a matching ?token= parameter.
func (s *SAPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.methodIsGet(w, r) {
		return
	}
	if len(s.tokenDigest) > 0 {
		token := r.URL.Query().Get("token")
		if err := auth.CompareTokens(s.tokenDigest, []byte(token)); err != nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
	}

	refreshID := s.Runner.TriggerRefresh(false)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":     "refresh_started",
		"refresh_id": refreshID,
	})
}
