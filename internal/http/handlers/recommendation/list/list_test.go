package list

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

	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

const testUID = "9f6c1c1e-72a8-4f4e-9a34-6f2b1df0a111"

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, uid string, limit, offset int, filter storage.ProductFilter) (*services.RecommendationListView, error) {
	args := m.Called(ctx, uid, limit, offset, filter)
	if res := args.Get(0); res != nil {
		return res.(*services.RecommendationListView), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешная выдача с пагинацией и фильтрами",
			uid:   testUID,
			query: "?limit=5&offset=10&category=tops&min_price=50",
			setupMock: func(m *MockService) {
				minPrice := 50.0
				view := &services.RecommendationListView{
					SubscriberUID: testUID,
					Products: []services.RecommendationItem{
						{Position: 11, Product: services.ProductView{ID: 1, Brand: "Quiet Studio"}, Score: 85, Quality: "excellent"},
					},
					Total:        42,
					AverageScore: 61.5,
				}
				m.On("List", mock.Anything, testUID, 5, 10, storage.ProductFilter{
					Category: "tops",
					MinPrice: &minPrice,
				}).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":42`,
		},
		{
			name:  "нечисловая цена отбрасывается",
			uid:   testUID,
			query: "?min_price=cheap",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, testUID, 0, 0, storage.ProductFilter{}).
					Return(&services.RecommendationListView{
						SubscriberUID: testUID,
						Products:      []services.RecommendationItem{},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"products":[]`,
		},
		{
			name:           "некорректный uid в URL",
			uid:            "not-a-uuid",
			query:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid subscriber uid"`,
		},
		{
			name:  "подписчик не найден",
			uid:   testUID,
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, testUID, 0, 0, storage.ProductFilter{}).
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subscriber not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscribers/"+tt.uid+"/recommendations"+tt.query, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
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
