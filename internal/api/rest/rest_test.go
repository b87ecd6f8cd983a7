package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-model-indexer/internal/api/middleware"
	"github.com/feral-file/ff-model-indexer/internal/api/rest"
	"github.com/feral-file/ff-model-indexer/internal/mocks"
)

func TestSetupRoutes(t *testing.T) {
	handled := func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	}

	tests := []struct {
		name   string
		method string
		path   string
		admin  bool
		expect func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call
	}{
		{"health", http.MethodGet, "/health", false, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.HealthCheck(gomock.Any()) }},
		{"model", http.MethodGet, "/api/v1/chains/eip155:1/models/3", false, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.GetModel(gomock.Any()) }},
		{"entitlement", http.MethodGet, "/api/v1/chains/eip155:1/models/3/entitlements/" + user, false, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.GetEntitlement(gomock.Any()) }},
		{"splitter", http.MethodGet, "/api/v1/models/3/splitter", false, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.GetSplitter(gomock.Any()) }},
		{"payout address", http.MethodGet, "/api/v1/models/3/payout-address", false, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.GetPayoutAddress(gomock.Any()) }},
		{"reindex", http.MethodPost, "/api/v1/chains/eip155:1/models/3/reindex", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.TriggerReindex(gomock.Any()) }},
		{"configure split", http.MethodPost, "/api/v1/models/3/splitter", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.ConfigureSplit(gomock.Any()) }},
		{"register payment", http.MethodPost, "/api/v1/payments", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.RegisterPayment(gomock.Any()) }},
		{"process payments", http.MethodPost, "/api/v1/payments/process", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.ProcessPayments(gomock.Any()) }},
		{"withdraw", http.MethodPost, "/api/v1/balances/" + user + "/withdraw", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.Withdraw(gomock.Any()) }},
		{"cursors", http.MethodGet, "/api/v1/cursors", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.ListCursors(gomock.Any()) }},
		{"reset cursor", http.MethodPost, "/api/v1/chains/eip155:1/streams/models/cursor/reset", true, func(h *mocks.MockAPIHandlerMockRecorder) *gomock.Call { return h.ResetCursor(gomock.Any()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := mocks.NewMockAPIHandler(ctrl)
			router := gin.New()
			rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{apiKey}})

			if tt.admin {
				// rejected before the handler runs
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			}

			tt.expect(handler.EXPECT()).Do(handled).Times(1)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range admin {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNoContent, w.Code)
		})
	}
}
