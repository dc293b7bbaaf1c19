package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/orchestrator"
	"github.com/ArunMS01/ai-sales/internal/outreach"
	"github.com/ArunMS01/ai-sales/internal/store"
)

func newTestServer(t *testing.T) (*server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	pipelines := map[string]*orchestrator.Orchestrator{
		"all": orchestrator.New(orchestrator.Params{Store: st}),
	}
	return newServer(st, pipelines, outreach.NewInbound(st, nil)), st
}

func doRequest(t *testing.T, s *server, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLeads_FilterByStage(t *testing.T) {
	s, st := newTestServer(t)

	fresh := &model.Lead{Company: "Fresh Co", Phone: "9000000001", Stage: model.StageNew}
	require.NoError(t, st.Insert(context.Background(), fresh))
	contacted := &model.Lead{Company: "Contacted Co", Phone: "9000000002", Stage: model.StageNew}
	require.NoError(t, st.Insert(context.Background(), contacted))
	require.NoError(t, st.UpdateStage(context.Background(), contacted.ID, model.StageContacted))

	rec := doRequest(t, s, http.MethodGet, "/leads?stage=new", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Fresh Co", got[0].Company)
}

func TestLeads_UnknownStageRejected(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/leads?stage=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPipelineSummary(t *testing.T) {
	s, st := newTestServer(t)
	require.NoError(t, st.Insert(context.Background(), &model.Lead{Company: "Acme", Stage: model.StageNew}))

	rec := doRequest(t, s, http.MethodGet, "/pipeline/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stages  map[model.Stage]int `json:"stages"`
		Running bool                `json:"running"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stages[model.StageNew])
	assert.False(t, resp.Running)
}

func TestRun_Accepted(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/run", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestTriggerRun(t *testing.T) {
	s, _ := newTestServer(t)

	// The cron entry kicks the full pipeline by name.
	assert.True(t, s.triggerRun("all"))
	assert.False(t, s.triggerRun("unknown"))
}

func TestCloseDeal(t *testing.T) {
	s, st := newTestServer(t)
	lead := &model.Lead{Company: "Acme Fashions", Phone: "9876543210", Stage: model.StageNew}
	require.NoError(t, st.Insert(context.Background(), lead))

	body := strings.NewReader(`{"id":"` + lead.ID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/deals/close", body)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := st.Get(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageClosed, stored.Stage)
}

func TestCloseDeal_UnknownLead(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/deals/close", strings.NewReader(`{"id":"nope"}`))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReply_AdvancesLead(t *testing.T) {
	s, st := newTestServer(t)

	lead := &model.Lead{Company: "Acme Fashions", Phone: "9876543210", Stage: model.StageNew}
	require.NoError(t, st.Insert(context.Background(), lead))
	require.NoError(t, st.UpdateStage(context.Background(), lead.ID, model.StageContacted))

	form := url.Values{
		"From": {"whatsapp:+919876543210"},
		"Body": {"yes, tell me more"},
	}
	rec := doRequest(t, s, http.MethodPost, "/webhooks/reply", form)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "interested", resp["intent"])
	assert.Equal(t, "pitched", resp["stage"])

	stored, err := st.Get(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StagePitched, stored.Stage)
}

func TestReply_MissingFromRejected(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/webhooks/reply", url.Values{"Body": {"hi"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReply_UnusableNumberRejected(t *testing.T) {
	s, _ := newTestServer(t)
	form := url.Values{"From": {"garbage"}, "Body": {"hi"}}
	rec := doRequest(t, s, http.MethodPost, "/webhooks/reply", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
