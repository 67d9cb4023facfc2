package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rezkit/internal/records/service"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

type RecordHandler struct {
	service service.RecordService
	log     *logger.Logger
}

func NewRecordHandler(service service.RecordService, log *logger.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		log:     log,
	}
}

func (h *RecordHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	from, err := httputil.ExtractTimeParam(r, "from", model.DayLayout)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	to, err := httputil.ExtractTimeParam(r, "to", model.DayLayout)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filter := model.RecordFilter{
		ItemID: r.URL.Query().Get("item_id"),
		Email:  r.URL.Query().Get("email"),
		From:   from,
		To:     to,
		Limit:  int64(limit),
		Offset: offset,
	}

	records, totalCount, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, records, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *RecordHandler) GetByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	record, err := h.service.GetByReference(r.Context(), ps.ByName("reference"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByReference", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, record); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByReference", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RecordHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/:reference", h.GetByReference)
}
