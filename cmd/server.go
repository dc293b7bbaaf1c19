package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/orchestrator"
	"github.com/ArunMS01/ai-sales/internal/outreach"
	"github.com/ArunMS01/ai-sales/internal/store"
)

// server exposes the pipeline over HTTP: health, lead queries, funnel
// summary, per-phase run triggers, deal closing and the inbound reply
// webhook. Triggers return 202 and run in the background; only one run may
// be in flight at a time.
type server struct {
	store     store.Store
	inbound   *outreach.Inbound
	pipelines map[string]*orchestrator.Orchestrator

	running atomic.Bool
	mu      sync.Mutex
	lastRun *orchestrator.Result
}

func newServer(st store.Store, pipelines map[string]*orchestrator.Orchestrator, inbound *outreach.Inbound) *server {
	return &server{store: st, pipelines: pipelines, inbound: inbound}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/leads", s.handleLeads)
	r.Get("/pipeline/summary", s.handleSummary)

	r.Post("/run", s.handleTrigger("all"))
	r.Post("/scrape/run", s.handleTrigger("scrape"))
	r.Post("/enrich/run", s.handleTrigger("enrich"))
	r.Post("/outreach/run", s.handleTrigger("outreach"))

	r.Post("/deals/close", s.handleCloseDeal)
	r.Post("/webhooks/reply", s.handleReply)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stage := model.Stage(q.Get("stage"))
	if stage != "" && !model.ValidStage(stage) {
		writeError(w, http.StatusBadRequest, "unknown stage")
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	leads, err := s.store.List(r.Context(), store.LeadFilter{
		Stage: stage,
		City:  q.Get("city"),
		Limit: limit,
	})
	if err != nil {
		zap.L().Error("list leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountByStage(r.Context())
	if err != nil {
		zap.L().Error("stage counts failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "summary failed")
		return
	}

	s.mu.Lock()
	last := s.lastRun
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"stages":   counts,
		"running":  s.running.Load(),
		"last_run": last,
	})
}

func (s *server) handleTrigger(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.triggerRun(name) {
			writeJSON(w, http.StatusConflict, map[string]string{"status": "already running"})
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "pipeline": name})
	}
}

// triggerRun starts the named pipeline in the background. Reports whether
// this call started it.
func (s *server) triggerRun(name string) bool {
	orch, ok := s.pipelines[name]
	if !ok {
		return false
	}
	if !s.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.running.Store(false)
		res, err := orch.Run(context.Background())
		if err != nil {
			zap.L().Error("triggered run failed", zap.String("pipeline", name), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.lastRun = res
		s.mu.Unlock()
		zap.L().Info("triggered run finished",
			zap.String("pipeline", name),
			zap.String("summary", res.Summary()),
		)
	}()
	return true
}

// handleCloseDeal marks a lead closed. Any stage may close; a closed lead
// stays closed.
func (s *server) handleCloseDeal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	lead, err := s.store.Get(r.Context(), req.ID)
	if err != nil {
		zap.L().Error("get lead failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if lead == nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	if model.CanTransition(lead.Stage, model.StageClosed) {
		if err := s.store.UpdateStage(r.Context(), lead.ID, model.StageClosed); err != nil {
			zap.L().Error("close deal failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "close failed")
			return
		}
		lead.Stage = model.StageClosed
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      lead.ID,
		"company": lead.Company,
		"stage":   string(lead.Stage),
	})
}

// handleReply accepts Twilio-style form posts (From, Body) for inbound
// WhatsApp replies and routes them into the funnel.
func (s *server) handleReply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		writeError(w, http.StatusBadRequest, "From is required")
		return
	}

	lead, intent, err := s.inbound.HandleReply(r.Context(), from, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]string{"intent": string(intent)}
	if lead != nil {
		resp["company"] = lead.Company
		resp["stage"] = string(lead.Stage)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
