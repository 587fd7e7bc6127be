package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/marketdata"
	"cognito-terminal/internal/oracle"
	"cognito-terminal/internal/quant"
	"cognito-terminal/internal/sim"
	"cognito-terminal/internal/ta"
	"cognito-terminal/internal/types"
)

// SimulationRequest is accepted both as a JSON body and as query parameters.
type SimulationRequest struct {
	Asset string  `json:"asset" query:"asset" default:"BTC" validate:"required,max=64"`
	Cash  float64 `json:"cash" query:"cash" default:"10000" validate:"gte=500,lte=100000"`
	Qty   float64 `json:"qty" query:"qty" default:"0.5" validate:"gte=0"`
	Days  int     `json:"days" query:"days" default:"10" validate:"gte=1,lte=60"`
}

func (r *SimulationRequest) params() sim.Params {
	return sim.Params{Asset: strings.ToUpper(strings.TrimSpace(r.Asset)), Cash: r.Cash, Qty: r.Qty, Days: r.Days}
}

func (s *Server) runSimulation(c echo.Context) error {
	req := &SimulationRequest{}
	if verr := readAndValidateRequest(c, req); verr != nil {
		return badRequestResponse(c, verr)
	}

	res, err := s.deps.Runner.Run(c.Request().Context(), req.params(), nil)
	if err != nil {
		if errors.Is(err, sim.ErrInvalidParams) {
			return badRequestResponse(c, err.Error())
		}
		logger.ErrorWithErr(c.Request().Context(), "Simulation failed", err, "asset", req.Asset)
		return internalErrorResponse(c)
	}
	return successResponse(c, res)
}

func (s *Server) listHistory(c echo.Context) error {
	entries, err := s.deps.History.LoadAll(c.Request().Context())
	if err != nil {
		logger.ErrorWithErr(c.Request().Context(), "Failed to load history", err)
		return internalErrorResponse(c)
	}
	return successResponse(c, entries)
}

func (s *Server) clearHistory(c echo.Context) error {
	if err := s.deps.History.Clear(c.Request().Context()); err != nil {
		logger.ErrorWithErr(c.Request().Context(), "Failed to clear history", err)
		return internalErrorResponse(c)
	}
	return c.NoContent(http.StatusNoContent)
}

type AuditResponse struct {
	Quote      types.Quote      `json:"quote"`
	Indicators quant.Indicators `json:"indicators"`
	Error      string           `json:"error,omitempty"`
}

// auditAsset degrades to neutral indicators when the quote cannot be fetched.
func (s *Server) auditAsset(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	q, err := s.deps.Market.Quote(ctx, id)
	switch {
	case errors.Is(err, marketdata.ErrUnknownAsset):
		return notFoundResponse(c, err.Error())
	case err != nil:
		logger.Warn(ctx, "Audit quote unavailable", "asset", id, "error", err.Error())
		return successResponse(c, AuditResponse{
			Quote:      types.Quote{ID: marketdata.ResolveCoinID(id)},
			Indicators: quant.Unavailable,
			Error:      err.Error(),
		})
	}
	return successResponse(c, AuditResponse{Quote: q, Indicators: quant.DeepIndicators(q.Change24h)})
}

type AssetHistoryResponse struct {
	Points     []types.PricePoint `json:"points"`
	Indicators ta.Summary         `json:"indicators"`
}

type assetHistoryRequest struct {
	Days int `query:"days" default:"30" validate:"gte=1,lte=365"`
}

func (s *Server) assetHistory(c echo.Context) error {
	req := &assetHistoryRequest{}
	if verr := readAndValidateRequest(c, req); verr != nil {
		return badRequestResponse(c, verr)
	}
	pts, err := s.deps.Market.History(c.Request().Context(), c.Param("id"), req.Days)
	if err != nil {
		if errors.Is(err, marketdata.ErrUnknownAsset) {
			return notFoundResponse(c, err.Error())
		}
		return badGatewayResponse(c, err.Error())
	}
	closes := make([]float64, len(pts))
	for i, p := range pts {
		closes[i] = p.Price
	}
	return successResponse(c, AssetHistoryResponse{Points: pts, Indicators: ta.Summarize(closes)})
}

func (s *Server) assetNews(c echo.Context) error {
	if s.deps.News == nil {
		return notFoundResponse(c, "news feed is not configured")
	}
	sentiment, err := s.deps.News.Sentiment(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.Warn(c.Request().Context(), "News unavailable", "asset", c.Param("id"), "error", err.Error())
		return badGatewayResponse(c, err.Error())
	}
	return successResponse(c, sentiment)
}

type scannerRequest struct {
	Limit int `query:"limit" default:"50" validate:"gte=1,lte=250"`
}

func (s *Server) scanner(c echo.Context) error {
	req := &scannerRequest{}
	if verr := readAndValidateRequest(c, req); verr != nil {
		return badRequestResponse(c, verr)
	}
	rows, err := s.deps.Market.Scanner(c.Request().Context(), req.Limit)
	if err != nil {
		return badGatewayResponse(c, err.Error())
	}
	return successResponse(c, quant.BatchScore(rows))
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

func (s *Server) chat(c echo.Context) error {
	req := &chatRequest{}
	if verr := readAndValidateRequest(c, req); verr != nil {
		return badRequestResponse(c, verr)
	}
	res := s.deps.Oracle.Compose(c.Request().Context(), oracle.ChatPrompt(req.Message))
	if !res.OK() {
		return badGatewayResponse(c, res.Err.Error())
	}
	return successResponse(c, map[string]string{"reply": res.Text})
}
