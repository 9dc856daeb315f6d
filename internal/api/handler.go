package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfolio-stats/internal/domain/dto"
	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/service"
)

// MsgInvalidBody is returned when the request body is not a valid OptimizeRequest.
const MsgInvalidBody = "Invalid request body."

// Handler provides HTTP handlers for the portfolio endpoints.
//
// Responsibilities:
//   - Decode and validate the incoming JSON body
//   - Delegate the computation to the optimize service
//   - Return structured JSON responses; failures are attached with c.Error
//     and rendered by middleware.ErrorHandler
type Handler struct {
	svc service.OptimizeService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.OptimizeService): Service used to compute portfolio statistics.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.OptimizeService) *Handler {
	return &Handler{svc: svc}
}

// Optimize handles POST /api/v1/optimize requests.
//
// Responses:
//   - 200 OK: Latest bar of the first resolved ticker plus expected return and risk.
//   - 400 Bad Request: Malformed body, or no company name could be resolved.
//   - 500 Internal Server Error: Price data unavailable or not enough aligned data.
//
// Optimize godoc
// @Summary      Equal-weight portfolio statistics
// @Description  Resolves company names to tickers, fetches one year of daily prices and returns expected return and risk of the equal-weight portfolio
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        request  body      dto.OptimizeRequest   true  "Companies to include"
// @Success      200      {object}  dto.OptimizeResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	var req dto.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(&errs.Error{Kind: errs.Input, Msg: MsgInvalidBody, Err: err})
		return
	}

	resp, err := h.svc.Optimize(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Companies handles GET /api/v1/companies requests.
//
// Companies godoc
// @Summary      Supported companies
// @Description  Lists the company names that can be sent to the optimize endpoint
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  dto.CompaniesResponse  "Success"
// @Router       /api/v1/companies [get]
func (h *Handler) Companies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CompaniesResponse{Companies: h.svc.Companies()})
}
