package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"addisnest-service/internal/core/port/usecases_port"
	"net/http"
)

type AdminHandlers struct {
	dashboardUC usecases_port.DashboardStatsUseCasePort
	listUsersUC usecases_port.ListUsersUseCasePort
}

func NewAdminHandlers(dashboardUC usecases_port.DashboardStatsUseCasePort, listUsersUC usecases_port.ListUsersUseCasePort) *AdminHandlers {
	return &AdminHandlers{dashboardUC: dashboardUC, listUsersUC: listUsersUC}
}

// Dashboard обрабатывает GET /admin/dashboard
func (h *AdminHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Dashboard"})

	stats, err := h.dashboardUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Success: true, Data: stats})
}

// ListUsers обрабатывает GET /admin/users?page&limit
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListUsers"})

	page, limit := listPageParams(r)
	users, total, err := h.listUsersUC.Execute(r.Context(), page, limit)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, PagedResponse{Success: true, Total: total, Page: page, Limit: limit, Data: users})
}
