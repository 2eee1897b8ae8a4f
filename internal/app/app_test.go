package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Kirankkt/Complex-gannt/internal/config"
	apierrors "github.com/Kirankkt/Complex-gannt/internal/errors"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/internal/shared/testutil"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts/events"
)

type ApplicationSuite struct {
	suite.Suite
	app    *Application
	server *httptest.Server
	path   string
}

func TestApplicationSuite(t *testing.T) {
	suite.Run(t, new(ApplicationSuite))
}

func testConfig(path string) *config.Config {
	cfg := config.Default()
	cfg.Schedule.File = path
	cfg.Schedule.Title = "Site Plan"
	cfg.Schedule.ChartHeight = 720
	cfg.Security.RateLimit.Enabled = false
	return cfg
}

func (s *ApplicationSuite) SetupTest() {
	s.path = testutil.WriteWorkbook(s.T(), "construction_timeline.xlsx", "", testutil.SampleScheduleRows())

	logger, _ := testutil.NewTestLogger(s.T())
	frontend := fstest.MapFS{
		"index.html": {Data: []byte(`<html><head><title>{{.Title}}</title></head><body data-chart="{{.ChartTitle}}"></body></html>`)},
		"gantt.js":   {Data: []byte(`// renderer`)},
	}

	app, err := New(testConfig(s.path), frontend, logger)
	s.Require().NoError(err)
	app.WebSocketHub.Start()

	s.app = app
	s.server = httptest.NewServer(app.Router)
}

func (s *ApplicationSuite) TearDownTest() {
	s.server.Close()
	s.app.Server = nil
	s.NoError(s.app.Stop(context.Background()))
}

func (s *ApplicationSuite) get(path string) (*http.Response, []byte) {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, body
}

func (s *ApplicationSuite) post(path string) (*http.Response, []byte) {
	resp, err := http.Post(s.server.URL+path, "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, body
}

func (s *ApplicationSuite) TestScene() {
	resp, body := s.get("/api/gantt/scene")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))

	var scene struct {
		Lanes []struct {
			Label string `json:"label"`
		} `json:"lanes"`
		Layout struct {
			Title  string `json:"title"`
			Height int    `json:"height"`
		} `json:"layout"`
	}
	s.Require().NoError(json.Unmarshal(body, &scene))
	s.Require().Len(scene.Lanes, 3)
	s.Equal("A - T1", scene.Lanes[0].Label)
	s.Equal("B - T1", scene.Lanes[2].Label)
	s.Equal("Site Plan", scene.Layout.Title)
	s.Equal(720, scene.Layout.Height)
}

func (s *ApplicationSuite) TestTasks() {
	resp, body := s.get("/api/gantt/tasks")
	s.Equal(http.StatusOK, resp.StatusCode)

	var table schedule.Table
	s.Require().NoError(json.Unmarshal(body, &table))
	s.Len(table.Tasks, 3)
	s.Equal(s.path, table.Source)
}

func (s *ApplicationSuite) TestTasksCSV() {
	resp, body := s.get("/api/gantt/tasks?format=csv")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/csv")
	s.Equal(4, strings.Count(string(body), "\n"), "header plus three tasks")
}

func (s *ApplicationSuite) TestHealth() {
	for _, path := range []string{"/api/health", "/api/health/ready", "/api/health/live", "/api/version"} {
		resp, _ := s.get(path)
		s.Equal(http.StatusOK, resp.StatusCode, path)
	}
}

func (s *ApplicationSuite) TestDashboardPage() {
	resp, body := s.get("/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "<title>"+config.PageTitle+"</title>")
	s.Contains(string(body), `data-chart="Site Plan"`)
	s.Equal("nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, body = s.get("/static/gantt.js")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "renderer")
}

func (s *ApplicationSuite) TestMetrics() {
	s.get("/api/gantt/scene")

	resp, body := s.get("/metrics")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), "gantt_scene_builds_total")
	s.Contains(string(body), "gantt_schedule_loads_total")
	s.Contains(string(body), "http_requests_total")
}

func (s *ApplicationSuite) TestUnknownRoute() {
	resp, body := s.get("/api/nope")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(string(body), "/errors/not-found")
}

func (s *ApplicationSuite) TestReloadNotifiesWebSocketClients() {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	readType := func() events.MessageType {
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
		var msg events.WebSocketMessage
		s.Require().NoError(conn.ReadJSON(&msg))
		return msg.Type
	}
	s.Equal(events.MessageTypeConnect, readType())

	resp, body := s.post("/api/gantt/reload")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(body), `"success":true`)
	s.Equal(events.MessageTypeScheduleReloaded, readType())
}

func (s *ApplicationSuite) TestReloadAfterSourceRemoved() {
	s.Require().NoError(os.Remove(s.path))

	resp, body := s.post("/api/gantt/reload")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var problem map[string]interface{}
	s.Require().NoError(json.Unmarshal(body, &problem))
	s.Equal("SOURCE_NOT_FOUND", problem["error_code"])
	s.Equal("File "+s.path+" not found!", problem["detail"])

	resp, _ = s.get("/api/health/ready")
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func TestNew_MissingSourceIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "construction_timeline.xlsx")
	logger, logs := testutil.NewTestLogger(t)

	app, err := New(testConfig(path), nil, logger)
	require.Error(t, err)
	assert.Nil(t, app)

	missing, ok := MissingSource(err)
	assert.True(t, ok)
	assert.Equal(t, path, missing)
	assert.True(t, logs.ContainsAttr("resolved_path", path))
}

func TestNew_MissingColumnIsFatal(t *testing.T) {
	path := testutil.WriteWorkbook(t, "plan.xlsx", "", [][]interface{}{
		{"Activity", "Task", "Start Date", "Status", "Progress"},
		{"A", "T1", "2024-01-01", "Finished", 100},
	})
	logger, _ := testutil.NewTestLogger(t)

	_, err := New(testConfig(path), nil, logger)
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrMissingColumn)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeParsing, appErr.Type)
	assert.Equal(t, path, appErr.Context["source"])

	_, ok := MissingSource(err)
	assert.False(t, ok)
}

func TestNew_MissingCredentialsFile(t *testing.T) {
	cfg := testConfig("unused.xlsx")
	cfg.Schedule.Source = config.ScheduleSourceSheets
	cfg.Schedule.SpreadsheetID = "sheet-123"
	cfg.Schedule.CredentialsFile = filepath.Join(t.TempDir(), "credentials.json")
	logger, _ := testutil.NewTestLogger(t)

	_, err := New(cfg, nil, logger)
	require.Error(t, err)
	missing, ok := MissingSource(err)
	assert.True(t, ok)
	assert.Equal(t, cfg.Schedule.CredentialsFile, missing)
}

func TestMissingSource_OtherErrors(t *testing.T) {
	_, ok := MissingSource(io.EOF)
	assert.False(t, ok)
}
