package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/handler"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/middleware"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/scheduler"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/service"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/service/mocks"
)

const testTenantID int64 = 7

// serve runs one request through a chi router so URL parameters resolve,
// with the tenant already on the context the way the middleware leaves it.
func serve(method, pattern, target string, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.TenantIDKey, testTenantID)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "test-request-id")
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateCampaign(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockCampaignService)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"name":"spring promo","template_id":3}`,
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().CreateCampaign(testTenantID, "spring promo", int64(3)).
					Return(&models.Campaign{ID: 42, TenantID: testTenantID, Name: "spring promo", TemplateID: 3, Status: models.CampaignStatusDraft}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing template id",
			body:           `{"name":"spring promo"}`,
			setupMocks:     func(m *mocks.MockCampaignService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "template not found",
			body: `{"name":"spring promo","template_id":99}`,
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().CreateCampaign(testTenantID, "spring promo", int64(99)).
					Return(nil, service.ErrTemplateNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			body:           `{`,
			setupMocks:     func(m *mocks.MockCampaignService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCampaign := mocks.NewMockCampaignService(ctrl)
			tt.setupMocks(mockCampaign)

			h := handler.NewHandler(&service.Service{Campaign: mockCampaign}, zap.NewNop())

			w := serve(http.MethodPost, "/campaigns", "/campaigns", tt.body, h.CreateCampaign)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandler_BuildSnapshot(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockCampaignService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().BuildSnapshot(testTenantID, int64(42)).Return(15, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "already snapshotted",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().BuildSnapshot(testTenantID, int64(42)).Return(0, service.ErrAlreadySnapshotted)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "CONFLICT",
		},
		{
			name: "no opted-in contacts",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().BuildSnapshot(testTenantID, int64(42)).Return(0, service.ErrNoRecipients)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "campaign not found",
			setupMocks: func(m *mocks.MockCampaignService) {
				m.EXPECT().BuildSnapshot(testTenantID, int64(42)).Return(0, service.ErrCampaignNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCampaign := mocks.NewMockCampaignService(ctrl)
			tt.setupMocks(mockCampaign)

			h := handler.NewHandler(&service.Service{Campaign: mockCampaign}, zap.NewNop())

			w := serve(http.MethodPost, "/campaigns/{campaignID}/snapshot", "/campaigns/42/snapshot", "", h.BuildSnapshot)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp handler.SnapshotResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, int64(42), resp.CampaignID)
				assert.Equal(t, 15, resp.RecipientCount)
			} else {
				var resp handler.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestHandler_SendCampaign(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockDispatcherService)
		expectedStatus int
	}{
		{
			name: "success with partial failures",
			setupMocks: func(m *mocks.MockDispatcherService) {
				m.EXPECT().Dispatch(gomock.Any(), testTenantID, int64(42)).
					Return(&service.DispatchResult{Sent: 1, Failed: 2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "dispatch already in progress",
			setupMocks: func(m *mocks.MockDispatcherService) {
				m.EXPECT().Dispatch(gomock.Any(), testTenantID, int64(42)).
					Return(nil, service.ErrDispatchInProgress)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "campaign not found",
			setupMocks: func(m *mocks.MockDispatcherService) {
				m.EXPECT().Dispatch(gomock.Any(), testTenantID, int64(42)).
					Return(nil, service.ErrCampaignNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "internal error",
			setupMocks: func(m *mocks.MockDispatcherService) {
				m.EXPECT().Dispatch(gomock.Any(), testTenantID, int64(42)).
					Return(nil, errors.New("database gone"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDispatcher := mocks.NewMockDispatcherService(ctrl)
			tt.setupMocks(mockDispatcher)

			h := handler.NewHandler(&service.Service{Dispatcher: mockDispatcher}, zap.NewNop())

			w := serve(http.MethodPost, "/campaigns/{campaignID}/send", "/campaigns/42/send", "", h.SendCampaign)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp handler.DispatchResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.Sent)
				assert.Equal(t, 2, resp.Failed)
			}
		})
	}
}

func TestHandler_ScheduleCampaign(t *testing.T) {
	when := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaign := mocks.NewMockCampaignService(ctrl)
	mockCampaign.EXPECT().Schedule(testTenantID, int64(42), when).Return(nil)
	mockCampaign.EXPECT().GetCampaign(testTenantID, int64(42)).
		Return(&models.Campaign{ID: 42, Status: models.CampaignStatusScheduled}, nil)

	h := handler.NewHandler(&service.Service{Campaign: mockCampaign}, zap.NewNop())

	body, err := json.Marshal(handler.ScheduleCampaignRequest{ScheduledFor: when})
	require.NoError(t, err)

	w := serve(http.MethodPost, "/campaigns/{campaignID}/schedule", "/campaigns/42/schedule", string(body), h.ScheduleCampaign)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ScheduleCampaign_BadBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaign := mocks.NewMockCampaignService(ctrl)

	h := handler.NewHandler(&service.Service{Campaign: mockCampaign}, zap.NewNop())

	w := serve(http.MethodPost, "/campaigns/{campaignID}/schedule", "/campaigns/42/schedule", `{}`, h.ScheduleCampaign)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaign := mocks.NewMockCampaignService(ctrl)
	mockCampaign.EXPECT().ListRecipients(testTenantID, int64(42), 2, 10).
		Return([]*models.CampaignRecipient{
			{ID: 11, CampaignID: 42, Phone: "+905550000001", Status: models.RecipientStatusSent},
		}, int64(15), nil)

	h := handler.NewHandler(&service.Service{Campaign: mockCampaign}, zap.NewNop())

	w := serve(http.MethodGet, "/campaigns/{campaignID}/recipients", "/campaigns/42/recipients?page=2&limit=10", "", h.ListRecipients)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.RecipientListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipients, 1)
	assert.Equal(t, int64(15), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
}

func TestHandler_CreateContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDirectory := mocks.NewMockDirectoryService(ctrl)
	mockDirectory.EXPECT().CreateContact(gomock.Any()).
		DoAndReturn(func(c *models.Contact) (*models.Contact, error) {
			assert.Equal(t, testTenantID, c.TenantID)
			assert.Equal(t, "Asha", c.Name)
			c.ID = 100
			return c, nil
		})

	h := handler.NewHandler(&service.Service{Directory: mockDirectory}, zap.NewNop())

	body := `{"name":"Asha","phone":"+905550000001","custom_fields":{"city":"Izmir"}}`
	w := serve(http.MethodPost, "/contacts", "/contacts", body, h.CreateContact)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateContact_MissingPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDirectory := mocks.NewMockDirectoryService(ctrl)
	mockDirectory.EXPECT().CreateContact(gomock.Any()).
		Return(nil, service.ErrValidation)

	h := handler.NewHandler(&service.Service{Directory: mockDirectory}, zap.NewNop())

	w := serve(http.MethodPost, "/contacts", "/contacts", `{"name":"Asha"}`, h.CreateContact)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_StartScheduler(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockSchedulerService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "success",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "already running",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(scheduler.ErrSchedulerAlreadyRunning)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "SCHEDULER_ALREADY_RUNNING",
		},
		{
			name: "internal error",
			setupMocks: func(m *mocks.MockSchedulerService) {
				m.EXPECT().Start().Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  middleware.ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockScheduler := mocks.NewMockSchedulerService(ctrl)
			tt.setupMocks(mockScheduler)

			h := handler.NewHandler(&service.Service{Scheduler: mockScheduler}, zap.NewNop())

			w := serve(http.MethodPost, "/scheduler/start", "/scheduler/start", "", h.StartScheduler)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var resp handler.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		health         *service.HealthStatus
		expectedStatus int
	}{
		{
			name: "healthy",
			health: &service.HealthStatus{
				Status:          service.StatusHealthy,
				SchedulerStatus: service.SchedulerRunning,
				DatabaseStatus:  service.ComponentConnected,
				RedisStatus:     service.ComponentConnected,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "degraded stays 200",
			health: &service.HealthStatus{
				Status:         service.StatusDegraded,
				DatabaseStatus: service.ComponentConnected,
				RedisStatus:    service.ComponentConnected,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unhealthy",
			health: &service.HealthStatus{
				Status:         service.StatusUnhealthy,
				DatabaseStatus: service.ComponentDisconnected,
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHealth := mocks.NewMockHealthService(ctrl)
			mockHealth.EXPECT().GetHealth().Return(tt.health)

			h := handler.NewHandler(&service.Service{Health: mockHealth}, zap.NewNop())

			w := serve(http.MethodGet, "/health", "/health", "", h.HealthCheck)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp handler.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.health.Status, resp.Status)
		})
	}
}
