package handlers

import (
	"context"
	"net/http"
	"time"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/protocol"
	"greenhouse_control/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockGreenhouse struct {
	enableErr     error
	disableErr    error
	frameErr      error
	enableCalled  int
	disableCalled int
	lastFrame     string
}

func (m *mockGreenhouse) Enable(ctx context.Context) error {
	m.enableCalled++
	return m.enableErr
}
func (m *mockGreenhouse) Disable(ctx context.Context) error {
	m.disableCalled++
	return m.disableErr
}
func (m *mockGreenhouse) ApplyFrame(ctx context.Context, frame []byte) (protocol.Command, error) {
	m.lastFrame = string(frame)
	if m.frameErr != nil {
		return protocol.Command{}, m.frameErr
	}
	return protocol.Parse(frame)
}

type mockMonitoring struct {
	status models.Status
	err    error
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (models.Status, error) {
	return m.status, m.err
}

type mockEventLog struct {
	resp     []models.ControllerEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ControllerEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockReadings struct {
	resp       []models.Reading
	err        error
	lastFilter service.ReadingFilter
}

func (m *mockReadings) History(ctx context.Context, f service.ReadingFilter) ([]models.Reading, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func authorize(req *http.Request) {
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}
