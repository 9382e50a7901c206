package api

import (
	"context"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockfn/internal/domain/dto"
	"github.com/guttosm/stockfn/internal/domain/models"
	"github.com/guttosm/stockfn/internal/logger"
	"github.com/guttosm/stockfn/internal/middleware"
	"github.com/guttosm/stockfn/internal/service"
)

// Handler provides HTTP handlers for the stock endpoints.
//
// Responsibilities:
//   - Validate the "code" query parameter before any store access
//   - Delegate to the stock service
//   - Answer with {"doc": ...} or {"error": ...}, always with HTTP 200
type Handler struct {
	svc service.StockService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.StockService): Service used for lookups and writes.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.StockService) *Handler {
	return &Handler{svc: svc}
}

// ShowStock godoc
// @Summary      Show a stock
// @Description  Returns the stock whose code matches. Logical failures answer 200 with {"error": "<message>"}.
// @Tags         stock
// @Produce      json
// @Param        code  query     string  true  "Stock code" example(5168)
// @Success      200   {object}  dto.StockResponse  "Found"
// @Router       /showStock [get]
func (h *Handler) ShowStock(c *gin.Context) {
	h.serve(c, "showStock", h.svc.Show)
}

// UpdateStock godoc
// @Summary      Update a stock
// @Description  Writes a fixed price to the stock whose code matches and returns it as stored afterwards. Logical failures answer 200 with {"error": "<message>"}.
// @Tags         stock
// @Produce      json
// @Param        code  query     string  true  "Stock code" example(5168)
// @Success      200   {object}  dto.StockResponse  "Updated"
// @Router       /updateStock [get]
func (h *Handler) UpdateStock(c *gin.Context) {
	h.serve(c, "updateStock", h.svc.Update)
}

// AddStock godoc
// @Summary      Add a stock
// @Description  Creates the default stock record when nothing matches code and returns the stored record. Logical failures answer 200 with {"error": "<message>"}.
// @Tags         stock
// @Produce      json
// @Param        code  query     string  true  "Stock code" example(5168)
// @Success      200   {object}  dto.StockResponse  "Created"
// @Router       /addStock [get]
func (h *Handler) AddStock(c *gin.Context) {
	h.serve(c, "addStock", h.svc.Add)
}

type stockOp func(ctx context.Context, code string) (*models.Stock, error)

func (h *Handler) serve(c *gin.Context, endpoint string, op stockOp) {
	code, err := codeParam(c)
	if err != nil {
		respondFailure(c, endpoint, "", err)
		return
	}

	stock, err := op(c.Request.Context(), code)
	if err != nil {
		respondFailure(c, endpoint, code, err)
		return
	}

	c.JSON(http.StatusOK, dto.StockResponse{Doc: *stock})
}

// codeParam extracts the single "code" query value.
// An empty value is accepted and looked up as-is; a value that is not valid
// UTF-8 is rejected before it reaches the store.
func codeParam(c *gin.Context) (string, error) {
	values, ok := c.GetQueryArray("code")
	if !ok {
		return "", service.NewError(service.KindMissingParameter, nil)
	}
	if len(values) != 1 || !utf8.ValidString(values[0]) {
		return "", service.NewError(service.KindInvalidParameter, nil)
	}
	return values[0], nil
}

func respondFailure(c *gin.Context, endpoint, code string, err error) {
	kind := service.KindOf(err)
	rid, _ := c.Get(middleware.RequestIDKey)

	ev := logger.L().Info()
	if kind == service.KindStore {
		ev = logger.L().Error().Err(err)
	}
	ev.Interface("request_id", rid).
		Str("endpoint", endpoint).
		Str("code", code).
		Str("kind", kind.String()).
		Msg("stock request failed")

	c.JSON(http.StatusOK, dto.StockFailureResponse{Error: kind.Message()})
}
