package explain

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fashion-curation/internal/matching"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

const testUID = "9f6c1c1e-72a8-4f4e-9a34-6f2b1df0a111"

// MockService реализует интерфейс explain.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Explain(ctx context.Context, uid string, productID int64) (*services.ExplanationView, error) {
	args := m.Called(ctx, uid, productID)
	if res := args.Get(0); res != nil {
		return res.(*services.ExplanationView), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestExplainHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		productID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное объяснение балла",
			uid:       testUID,
			productID: "7",
			setupMock: func(m *MockService) {
				view := &services.ExplanationView{
					ProductID: 7,
					Score:     85,
					Quality:   "excellent",
					Explanation: matching.Explanation{
						Reasons: []string{"aesthetic match: minimalist"},
					},
				}
				m.On("Explain", mock.Anything, testUID, int64(7)).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `aesthetic match: minimalist`,
		},
		{
			name:           "некорректный id товара",
			uid:            testUID,
			productID:      "seven",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid product id"`,
		},
		{
			name:      "товар не найден",
			uid:       testUID,
			productID: "404",
			setupMock: func(m *MockService) {
				m.On("Explain", mock.Anything, testUID, int64(404)).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subscriber or product not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			url := "/subscribers/" + tt.uid + "/products/" + tt.productID + "/explanation"
			req := httptest.NewRequest(http.MethodGet, url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			rctx.URLParams.Add("productID", tt.productID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
