package call

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ideaforge/internal/apperr"
	"ideaforge/internal/auth"
	"ideaforge/internal/dto"
	"ideaforge/internal/model"
	"ideaforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier struct{ subject *auth.Subject }

func (v *staticVerifier) Verify(string) (*auth.Subject, error) {
	if v.subject == nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "bad token")
	}
	return v.subject, nil
}

type noopEnsurer struct{}

func (noopEnsurer) EnsureRole(string, string) {}

type stubIdeaService struct {
	idea *model.ProjectIdea
	err  error
}

func (s *stubIdeaService) GenerateProjectIdea(context.Context, dto.GenerateIdeaRequest) (*model.ProjectIdea, error) {
	return s.idea, s.err
}

type stubHistoryService struct {
	saved   []dto.SaveHistoryRequest
	records []model.HistoryRecord
	err     error
}

func (s *stubHistoryService) SaveIdea(_ string, req dto.SaveHistoryRequest) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, req)
	return nil
}

func (s *stubHistoryService) GetUserHistory(string, string, int) ([]model.HistoryRecord, error) {
	return s.records, s.err
}

type stubAdminService struct {
	lastManage dto.ManageUsersRequest
	lastBulk   dto.BulkUserRequest
	err        error
}

func (s *stubAdminService) GetUserRole(string, string) (service.RoleInfo, error) {
	if s.err != nil {
		return service.RoleInfo{}, s.err
	}
	return service.RoleInfo{Role: model.RoleUser, Status: model.StatusActive}, nil
}

func (s *stubAdminService) ManageUsers(req dto.ManageUsersRequest) ([]model.UserRole, string, error) {
	s.lastManage = req
	if s.err != nil {
		return nil, "", s.err
	}
	return []model.UserRole{{UserID: "u1"}}, "User roles retrieved successfully", nil
}

func (s *stubAdminService) BulkUserOperations(req dto.BulkUserRequest) (*dto.BulkOperationResponse, error) {
	s.lastBulk = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.BulkOperationResponse{Success: true}, nil
}

func (s *stubAdminService) GetAdminLogs(string, int) ([]model.AdminActionLog, error) {
	return nil, s.err
}

type fixture struct {
	router  *gin.Engine
	history *stubHistoryService
	admin   *stubAdminService
	idea    *stubIdeaService
}

func newFixture(subject *auth.Subject) *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		history: &stubHistoryService{},
		admin:   &stubAdminService{},
		idea:    &stubIdeaService{},
	}
	ctl := NewController(service.NewGameService(), f.idea, f.history, f.admin)
	f.router = gin.New()
	f.router.POST("/call/:name", auth.Middleware(&staticVerifier{subject: subject}, noopEnsurer{}), ctl.Handle)
	return f
}

func (f *fixture) call(t *testing.T, name, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/call/"+name, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

func TestCallGetGameSteps(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "u1"})

	w := f.call(t, "getGameSteps", `{"data":{}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result dto.GameStepsResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Result.Success)
	assert.Len(t, body.Result.Steps, 8)
}

func TestCallEmptyEnvelopeDefaultsToEmptyObject(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "u1"})

	// no "data" key at all still dispatches
	w := f.call(t, "getGameSteps", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCallSaveIdeaToHistory(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "u1"})

	w := f.call(t, "saveIdeaToHistory", `{"data":{"userId":"u1","ideaData":{"query":"q","idea":"i"}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.history.saved, 1)
	assert.Equal(t, "u1", f.history.saved[0].UserID)
}

func TestCallManageUsersOverridesAdminID(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "admin1"})

	// a spoofed adminUserId in the payload is ignored
	w := f.call(t, "manageUsers", `{"data":{"adminUserId":"someone-else"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin1", f.admin.lastManage.AdminUserID)
}

func TestCallBulkOverridesAdminID(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "admin1"})

	w := f.call(t, "bulkUserOperations", `{"data":{"adminUserId":"spoof","userIds":["u1"],"action":"export"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin1", f.admin.lastBulk.AdminUserID)
}

func TestCallUnknownFunction(t *testing.T) {
	f := newFixture(&auth.Subject{ID: "u1"})

	w := f.call(t, "doesNotExist", `{"data":{}}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Status)
}

func TestCallErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"permission denied", apperr.New(apperr.KindPermissionDenied, "Admin access required"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"generation unavailable", apperr.New(apperr.KindGenerationUnavailable, "no key"), http.StatusPreconditionFailed, "FAILED_PRECONDITION"},
		{"quota", apperr.New(apperr.KindQuotaExhausted, "quota"), http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},
		{"internal", apperr.New(apperr.KindInternal, "boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&auth.Subject{ID: "u1"})
			f.admin.err = tt.err

			w := f.call(t, "getAdminLogs", `{"data":{}}`)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Error struct {
					Status  string `json:"status"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Status)
			if tt.wantStatus == http.StatusInternalServerError {
				// internals never leak their message
				assert.Equal(t, "Internal server error", body.Error.Message)
			}
		})
	}
}

func TestCallRejectsUnauthenticated(t *testing.T) {
	f := newFixture(nil)

	w := f.call(t, "getGameSteps", `{"data":{}}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
