package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/api/request"
	"github.com/TodayDesign/vercel-project-dashboard/internal/api/response"
	"github.com/TodayDesign/vercel-project-dashboard/internal/ping"
)

// Prober is implemented by ping.Prober.
type Prober interface {
	Probe(ctx context.Context, domain string) (ping.Result, error)
}

type PingResponse struct {
	Latency int64 `json:"latency"`
	Status  int   `json:"status"`
	Success bool  `json:"success"`
}

type PingErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

type Ping struct {
	prober Prober
}

func NewPing(prober Prober) *Ping {
	return &Ping{prober: prober}
}

// Probe godoc
//
//	@Summary		Measure domain latency
//	@Description	HEADs the domain favicon, falling back to the root, and reports the round trip in milliseconds. Probes run one at a time.
//	@Tags			Ping
//	@Security		BasicAuth
//	@Param			body	body		request.Ping	true	"Domain to probe"
//	@Success		200		{object}	PingResponse
//	@Failure		400		{object}	PingErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Failure		503		{object}	PingErrorResponse
//	@Router			/ping [post]
func (h *Ping) Probe(w http.ResponseWriter, r *http.Request) {
	var req request.Ping
	if err := request.Decode(r, &req); err != nil {
		if request.IsValidationError(err) {
			msg := "Invalid domain"
			if req.Domain == "" {
				msg = "Domain is required"
			}
			response.WriteJSON(w, http.StatusBadRequest, PingErrorResponse{Error: msg})
			return
		}
		response.WriteJSON(w, http.StatusBadRequest, PingErrorResponse{Error: "Invalid request"})
		return
	}

	res, err := h.prober.Probe(r.Context(), req.Domain)
	if err != nil {
		if errors.Is(err, ping.ErrInvalidDomain) {
			response.WriteJSON(w, http.StatusBadRequest, PingErrorResponse{Error: "Invalid domain"})
			return
		}
		zerolog.Ctx(r.Context()).Info().Err(err).Str("domain", req.Domain).Msg("ping failed")
		response.WriteJSON(w, http.StatusServiceUnavailable, PingErrorResponse{Error: "Failed to reach domain"})
		return
	}

	response.WriteJSON(w, http.StatusOK, PingResponse{
		Latency: res.Latency,
		Status:  res.Status,
		Success: true,
	})
}
