package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/models"
)

func newReportsMux(svc *mockReportService) *http.ServeMux {
	mux := http.NewServeMux()
	NewReportsHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestNextActionsBoard(t *testing.T) {
	t.Run("returns items with total", func(t *testing.T) {
		due := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		svc := &mockReportService{
			nextActionsFunc: func(ctx context.Context) ([]*models.NextActionItem, error) {
				return []*models.NextActionItem{
					{
						InteractionID: uuid.New(),
						ContactID:     uuid.New(),
						ContactName:   "Jane Doe",
						NextAction:    "Send proposal",
						NextActionDue: due,
						Overdue:       true,
					},
				}, nil
			},
		}
		mux := newReportsMux(svc)

		rec, env := doRequest(t, mux, http.MethodGet, "/api/next-actions", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), `"total":1`)
		assert.Contains(t, string(env.Data), "Send proposal")
		assert.Contains(t, string(env.Data), `"overdue":true`)
	})

	t.Run("repository failure maps to 500", func(t *testing.T) {
		svc := &mockReportService{
			nextActionsFunc: func(ctx context.Context) ([]*models.NextActionItem, error) {
				return nil, errors.New("connection reset")
			},
		}
		mux := newReportsMux(svc)

		rec, env := doRequest(t, mux, http.MethodGet, "/api/next-actions", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "list_next_actions_failed", env.Error)
	})
}

func TestOutcomeMetricsEndpoint(t *testing.T) {
	svc := &mockReportService{
		outcomesFunc: func(ctx context.Context) ([]*models.OutcomeCount, error) {
			return []*models.OutcomeCount{
				{Outcome: models.OutcomePending, Count: 3},
				{Outcome: models.OutcomePositive, Count: 2},
			}, nil
		},
	}
	mux := newReportsMux(svc)

	rec, env := doRequest(t, mux, http.MethodGet, "/api/metrics/outcomes", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"pending"`)
	assert.Contains(t, string(env.Data), `"count":3`)
}
