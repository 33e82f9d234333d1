package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/drivedeal/drivedeal-backend/internal/api/httpx"
	"github.com/drivedeal/drivedeal-backend/internal/middleware"
	"github.com/drivedeal/drivedeal-backend/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

type fileReportReq struct {
	ReportedUserID int64  `json:"reported_user_id"`
	ListingID      *int64 `json:"listing_id"`
	Reason         string `json:"reason"`
}

func (h *ReportHandler) File(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var req fileReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Reported user ID and reason are required")
		return
	}
	if _, err := h.Reports.File(r.Context(), id.UserID, req.ReportedUserID, req.Reason, req.ListingID); err != nil {
		respondError(w, err)
		return
	}
	httpx.WriteSuccess(w)
}
