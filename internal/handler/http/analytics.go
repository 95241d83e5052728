package http

import (
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/analytics"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Occupancy(w http.ResponseWriter, r *http.Request)
	WeeklyPattern(w http.ResponseWriter, r *http.Request)
	StatusDistribution(w http.ResponseWriter, r *http.Request)
	Personal(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// compute runs the shared query and writes the part selected by pick.
func (h *analyticsHandlerImpl) compute(w http.ResponseWriter, r *http.Request, pick func(analytics.AnalyticsResponse) interface{}) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	query := analytics.AnalyticsQuery{
		StartDate:     queryPtr(r, "startDate"),
		EndDate:       queryPtr(r, "endDate"),
		UserID:        queryPtr(r, "userId"),
		ChapterLeadID: queryPtr(r, "chapterLeadId"),
	}

	result, err := h.analyticsService.Compute(r.Context(), s, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pick(result))
}

// Get implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, func(a analytics.AnalyticsResponse) interface{} { return a })
}

// Overview implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, func(a analytics.AnalyticsResponse) interface{} { return a.Overview })
}

// Occupancy implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Occupancy(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, func(a analytics.AnalyticsResponse) interface{} { return a.OccupancyData })
}

// WeeklyPattern implements AnalyticsHandler.
func (h *analyticsHandlerImpl) WeeklyPattern(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, func(a analytics.AnalyticsResponse) interface{} { return a.WeeklyPattern })
}

// StatusDistribution implements AnalyticsHandler.
func (h *analyticsHandlerImpl) StatusDistribution(w http.ResponseWriter, r *http.Request) {
	h.compute(w, r, func(a analytics.AnalyticsResponse) interface{} { return a.StatusDistribution })
}

// Personal implements AnalyticsHandler.
func (h *analyticsHandlerImpl) Personal(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	query := analytics.PersonalStatsQuery{
		UserID: queryPtr(r, "userId"),
		Month:  queryPtr(r, "month"),
	}

	result, err := h.analyticsService.Personal(r.Context(), s, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
