package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/app/server"
	"schooladmin/internal/domain/auth"
	"schooladmin/internal/platform/config"
	"schooladmin/internal/platform/seed"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, seed.Write(dir))
	return config.Config{
		Addr:               ":0",
		Environment:        "test",
		SchoolName:         "Ліцей",
		DataDir:            dir,
		ClassesFile:        seed.ClassesFile,
		StudentsFile:       seed.StudentsFile,
		StaffFile:          seed.StaffFile,
		SessionSecret:      "test-secret",
		SessionTTL:         time.Hour,
		MaxBodyBytes:       65536,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
}

func startApp(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	app, err := server.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte, dst any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func openSession(t *testing.T, ts *httptest.Server, body any) string {
	t.Helper()
	resp, raw := call(t, ts, http.MethodPost, "/api/v1/sessions", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var opened struct {
		Token     string `json:"token"`
		SessionID string `json:"sessionId"`
	}
	decode(t, raw, &opened)
	require.NotEmpty(t, opened.Token)
	require.NotEmpty(t, opened.SessionID)
	return opened.Token
}

type statsView struct {
	Classes        int `json:"classes"`
	TotalStudents  int `json:"totalStudents"`
	PromotionCount int `json:"promotionCount"`
}

func stats(t *testing.T, ts *httptest.Server, token, view string) statsView {
	t.Helper()
	path := "/api/v1/roster/stats"
	if view != "" {
		path += "?view=" + view
	}
	resp, raw := call(t, ts, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out statsView
	decode(t, raw, &out)
	return out
}

func TestRosterPromotionJourney(t *testing.T) {
	ts := startApp(t, testConfig(t))
	token := openSession(t, ts, nil)

	before := stats(t, ts, token, "")
	assert.Equal(t, 22, before.Classes)
	assert.Positive(t, before.TotalStudents)
	assert.Zero(t, before.PromotionCount)

	resp, raw := call(t, ts, http.MethodGet, "/api/v1/roster/stats?view=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", decode(t, raw, nil).Error.Code)

	resp, _ = call(t, ts, http.MethodPost, "/api/v1/roster/promote", token, map[string]bool{"confirm": false})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = call(t, ts, http.MethodPost, "/api/v1/roster/promote", token, map[string]bool{"confirm": true})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var report struct {
		Graduated []string          `json:"graduated"`
		Promoted  map[string]string `json:"promoted"`
	}
	decode(t, raw, &report)
	assert.Equal(t, []string{"11А", "11Б"}, report.Graduated)
	assert.Equal(t, "2А", report.Promoted["1А"])
	assert.Len(t, report.Promoted, 20)

	after := stats(t, ts, token, "current")
	assert.Equal(t, 20, after.Classes)
	assert.Equal(t, 1, after.PromotionCount)
	assert.Less(t, after.TotalStudents, before.TotalStudents)

	baseline := stats(t, ts, token, "baseline")
	assert.Equal(t, before, baseline)

	// Another session starts from the files, not from the promoted roster.
	other := openSession(t, ts, nil)
	assert.Equal(t, before, stats(t, ts, other, ""))

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/roster/classes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var classes []struct {
		Name  string `json:"name"`
		Grade int    `json:"grade"`
	}
	decode(t, raw, &classes)
	require.Len(t, classes, 20)
	assert.Equal(t, "2А", classes[0].Name)

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/roster/students?limit=5&offset=0", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var students []json.RawMessage
	decode(t, raw, &students)
	assert.Len(t, students, 5)
	assert.Equal(t, after.TotalStudents, atoi(t, resp.Header.Get("X-Total-Count")))

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/roster/export.xlsx?view=baseline", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "roster_baseline.xlsx")
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/roster/report.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = call(t, ts, http.MethodDelete, "/api/v1/sessions", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, ts, http.MethodGet, "/api/v1/roster/stats", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPayrollJourney(t *testing.T) {
	ts := startApp(t, testConfig(t))
	token := openSession(t, ts, nil)

	type snapshot struct {
		Rows []struct {
			Role  string  `json:"role"`
			Bonus float64 `json:"bonus"`
			Total float64 `json:"total"`
		} `json:"rows"`
		Summary struct {
			EmployeeCount int     `json:"employeeCount"`
			TotalSalary   float64 `json:"totalSalary"`
			TotalBonus    float64 `json:"totalBonus"`
			TotalPayable  float64 `json:"totalPayable"`
		} `json:"summary"`
	}

	resp, raw := call(t, ts, http.MethodGet, "/api/v1/payroll", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var snap snapshot
	decode(t, raw, &snap)
	require.Len(t, snap.Rows, 5)
	assert.Equal(t, "director", snap.Rows[0].Role)
	assert.Equal(t, 34750.0, snap.Summary.TotalSalary)
	assert.Zero(t, snap.Summary.TotalBonus)

	for _, bad := range []any{-5, "abc", "-0,01", true, 1e307} {
		resp, raw = call(t, ts, http.MethodPost, "/api/v1/payroll/bonus", token, map[string]any{"bonus": bad})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "bonus %v", bad)
		env := decode(t, raw, nil)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
	}

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/payroll", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = snapshot{}
	decode(t, raw, &snap)
	assert.Zero(t, snap.Summary.TotalBonus)

	resp, raw = call(t, ts, http.MethodPost, "/api/v1/payroll/bonus", token, map[string]any{"bonus": "100,5"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	snap = snapshot{}
	decode(t, raw, &snap)
	assert.Equal(t, 502.5, snap.Summary.TotalBonus)
	assert.Equal(t, 34750.0, snap.Summary.TotalSalary)
	assert.Equal(t, 35252.5, snap.Summary.TotalPayable)
	for _, row := range snap.Rows {
		assert.Equal(t, 100.5, row.Bonus)
	}

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/payroll/export.csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "role,name,base_salary,teaching_experience,management_experience,general_experience,salary,bonus,total", lines[0])
	assert.True(t, strings.HasSuffix(lines[5], ",12250.00,100.50,12350.50"), lines[5])

	resp, raw = call(t, ts, http.MethodGet, "/api/v1/payroll/report.pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = call(t, ts, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var metrics map[string]any
	decode(t, raw, &metrics)
	assert.EqualValues(t, 1, metrics["sessionsOpenedTotal"])
	assert.EqualValues(t, 5, metrics["bonusRejectedTotal"])
	assert.EqualValues(t, 1, metrics["payrollRunsTotal"])
}

func TestSessionRequired(t *testing.T) {
	ts := startApp(t, testConfig(t))

	resp, raw := call(t, ts, http.MethodGet, "/api/v1/payroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", decode(t, raw, nil).Error.Code)

	resp, _ = call(t, ts, http.MethodGet, "/api/v1/payroll", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	forged, err := auth.GenerateToken("other-secret", "whatever", time.Now(), time.Hour)
	require.NoError(t, err)
	resp, _ = call(t, ts, http.MethodGet, "/api/v1/payroll", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOpenSessionWithAccessCode(t *testing.T) {
	cfg := testConfig(t)
	hash, err := auth.HashAccessCode("staff-room")
	require.NoError(t, err)
	cfg.AccessCodeHash = hash
	ts := startApp(t, cfg)

	resp, raw := call(t, ts, http.MethodPost, "/api/v1/sessions", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", decode(t, raw, nil).Error.Code)

	resp, raw = call(t, ts, http.MethodPost, "/api/v1/sessions", "", map[string]string{"accessCode": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "access_denied", decode(t, raw, nil).Error.Code)

	resp, _ = call(t, ts, http.MethodPost, "/api/v1/sessions", "", map[string]string{"unexpected": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	openSession(t, ts, map[string]string{"accessCode": "staff-room"})
}

func TestOpenSessionReportsBrokenRoster(t *testing.T) {
	cfg := testConfig(t)
	broken := "parallel,vertical\n1,А\nx,Б\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, seed.ClassesFile), []byte(broken), 0o644))
	ts := startApp(t, cfg)

	resp, raw := call(t, ts, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
	env := decode(t, raw, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "roster_load_failed", env.Error.Code)
	assert.Equal(t, "classes", env.Error.Details["source"])
	assert.EqualValues(t, 3, env.Error.Details["line"])
}

func TestHealthz(t *testing.T) {
	ts := startApp(t, testConfig(t))
	resp, raw := call(t, ts, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(raw))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func atoi(t *testing.T, raw string) int {
	t.Helper()
	var n int
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	return n
}
