//-------------------------------------------------------------------------
//
// salesdash
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package server exposes the report catalog and the natural-language
// query translator over a small password-protected HTTP JSON API. This is
// the boundary the dashboard front end consumes; rendering is not done
// here.
package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/salesdash/salesdash/internal/db"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/nlq"
	"github.com/salesdash/salesdash/internal/reports"
)

// Server serves the dashboard API over the normalized store. The read
// path may run concurrently with itself but must not run while a pipeline
// rebuild drops and recreates tables.
type Server struct {
	store      *sql.DB
	translator *nlq.Translator
	password   string

	mu       sync.Mutex
	sessions map[string]time.Time
}

// sessionTTL bounds how long a login token stays valid.
const sessionTTL = 12 * time.Hour

// New creates a Server. An empty password disables authentication; a nil
// translator disables the ask endpoint.
func New(store *sql.DB, translator *nlq.Translator, password string) *Server {
	return &Server{
		store:      store,
		translator: translator,
		password:   password,
		sessions:   make(map[string]time.Time),
	}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/reports", s.auth(s.handleReportList))
	mux.HandleFunc("GET /api/reports/{name}", s.auth(s.handleReport))
	mux.HandleFunc("GET /api/customers", s.auth(s.handleCustomers))
	mux.HandleFunc("GET /api/status", s.auth(s.handleStatus))
	mux.HandleFunc("POST /api/ask", s.auth(s.handleAsk))
	return mux
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.password == "" || req.Password != s.password {
		writeError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	token := hex.EncodeToString(raw)

	s.mu.Lock()
	s.sessions[token] = time.Now().Add(sessionTTL)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// auth wraps a handler with bearer-token validation. With no password
// configured the API is open.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.password == "" {
			next(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		expiry, ok := s.sessions[token]
		if ok && time.Now().After(expiry) {
			delete(s.sessions, token)
			ok = false
		}
		s.mu.Unlock()

		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

type reportInfo struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	NeedsCustomer bool   `json:"needs_customer"`
}

func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	catalog := reports.Catalog()
	out := make([]reportInfo, 0, len(catalog))
	for _, rep := range catalog {
		out = append(out, reportInfo{
			Name:          rep.Name,
			Description:   rep.Description,
			NeedsCustomer: rep.NeedsCustomer,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := reports.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	res, err := report.Run(r.Context(), s.store, r.URL.Query().Get("customer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	names, err := reports.Customers(r.Context(), s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// handleStatus reports the build metadata of the underlying database:
// source path, fingerprint, version, build time, and per-table row
// counts. The dashboard uses it to show what the data was built from.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	meta, err := db.GetAllMetadata(r.Context(), s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	SQL    string          `json:"sql"`
	Result *reports.Result `json:"result"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.translator == nil {
		writeError(w, http.StatusServiceUnavailable, "natural-language queries are not configured")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query, err := s.translator.Translate(r.Context(), req.Question)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if err := nlq.Guard(query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := reports.Execute(r.Context(), s.store, query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, askResponse{SQL: query, Result: res})
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("Dashboard API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
