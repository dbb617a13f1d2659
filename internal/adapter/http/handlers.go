package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"contract-approval/internal/domain/ledger"

	"github.com/labstack/echo/v4"
)

// Check pings one dependency; nil means healthy.
type Check func(ctx context.Context) error

type Handler struct {
	roster *ledger.Roster
	checks map[string]Check
}

func NewHandler(roster *ledger.Roster, checks map[string]Check) *Handler {
	return &Handler{roster: roster, checks: checks}
}

type ledgerInfo struct {
	Fingerprint string `json:"fingerprint"`
	Approvers   int    `json:"approvers"`
	Quorum      int    `json:"quorum"`
}

// Health answers 503 with status "degraded" when any dependency check fails.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
		"checks": deps,
	}
	if h.roster != nil {
		body["ledger"] = ledgerInfo{
			Fingerprint: h.roster.Fingerprint(),
			Approvers:   h.roster.Size(),
			Quorum:      h.roster.Quorum(),
		}
	}
	return c.JSON(code, body)
}
