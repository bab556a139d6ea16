package update

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

	"github.com/magabrotheeeer/fashion-curation/internal/models"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

const testUID = "9f6c1c1e-72a8-4f4e-9a34-6f2b1df0a111"

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, uid string, req models.DummySubscriberUpdate) (int, error) {
	args := m.Called(ctx, uid, req)
	return args.Int(0), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление палитры",
			uid:  testUID,
			body: `{"palette":"monochrome"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, testUID, mock.MatchedBy(func(req models.DummySubscriberUpdate) bool {
					return req.Palette != nil && *req.Palette == "monochrome" && req.Aesthetic == nil
				})).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated":1`,
		},
		{
			name:           "некорректный uid в URL",
			uid:            "42",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid subscriber uid"`,
		},
		{
			name:           "некорректный JSON",
			uid:            testUID,
			body:           `{"palette":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "подписчик не найден",
			uid:  testUID,
			body: `{"palette":"monochrome"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, testUID, mock.Anything).Return(0, storage.ErrNotFound)
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

			req := httptest.NewRequest(http.MethodPut, "/subscribers/"+tt.uid, strings.NewReader(tt.body))
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
