package filters

import (
	"net/http"
	"strings"

	"sofadeal/internal/api/response"
	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/filterstate"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/pricing"
)

// Handler exposes the filter-state resolver and the price calculator.
type Handler struct {
	BasePath string
	Logger   logger.Logger
}

// NewHandler creates the filters handler. basePath is the listing route URLs are built on.
func NewHandler(basePath string, log logger.Logger) *Handler {
	return &Handler{BasePath: basePath, Logger: log}
}

// Resolution is the answer of every filter endpoint: where to navigate and the
// state found there.
type Resolution struct {
	URL   string             `json:"url"`
	State domain.FilterState `json:"state"`
}

// UpdateRequest is the body of POST /v1/filters.
type UpdateRequest struct {
	Query  string         `json:"query"`
	Update map[string]any `json:"update"`
}

// CategoryRequest is the body of POST /v1/filters/category.
type CategoryRequest struct {
	Query      string  `json:"query"`
	CategoryID *string `json:"categoryId"`
}

// ResetRequest is the body of POST /v1/filters/reset.
type ResetRequest struct {
	Query string `json:"query"`
}

// PriceRequest is the body of POST /v1/price.
type PriceRequest struct {
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discountPercent"`
}

func (h *Handler) resolve(values map[string][]string) Resolution {
	return Resolution{
		URL:   filterstate.URL(h.BasePath, values),
		State: filterstate.Parse(values),
	}
}

// ResolveHandler handles GET /v1/filters.
// @Summary Normalize a filter query
// @Description Parses the query with default fallback and returns the canonical listing URL.
// @Tags filters
// @Produce json
// @Success 200 {object} Resolution
// @Router /filters [get]
func (h *Handler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	res := Resolution{
		URL:   filterstate.Canonical(h.BasePath, values),
		State: filterstate.Parse(values),
	}
	response.Write(w, r, h.Logger, res, nil, http.StatusOK)
}

// UpdateHandler handles POST /v1/filters.
// @Summary Apply a filter update
// @Description Merges the update into the query. null, "" and "all" remove a key; any update without currentPage returns to page 1.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Current query and partial update"
// @Success 200 {object} Resolution
// @Failure 400 {object} domain.ErrorResponse
// @Router /filters [post]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	if len(req.Update) == 0 {
		response.Write(w, r, h.Logger, nil, apperror.NewValidationError("update must contain at least one key"), http.StatusOK)
		return
	}

	values := filterstate.Set(filterstate.Values(req.Query), filterstate.DecodeUpdate(req.Update))
	response.Write(w, r, h.Logger, h.resolve(values), nil, http.StatusOK)
}

// CategoryHandler handles POST /v1/filters/category.
// @Summary Change the category
// @Description Sets the category and clears size and material.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Current query and category id (null clears)"
// @Success 200 {object} Resolution
// @Failure 400 {object} domain.ErrorResponse
// @Router /filters/category [post]
func (h *Handler) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	categoryID := ""
	if req.CategoryID != nil {
		categoryID = strings.TrimSpace(*req.CategoryID)
	}
	values := filterstate.SetCategoryID(filterstate.Values(req.Query), categoryID)
	response.Write(w, r, h.Logger, h.resolve(values), nil, http.StatusOK)
}

// ResetHandler handles POST /v1/filters/reset.
// @Summary Reset the filters
// @Description Removes every recognized filter key in one navigation.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body ResetRequest false "Current query"
// @Success 200 {object} Resolution
// @Router /filters/reset [post]
func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := response.Decode(w, r, &req, true); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	values := filterstate.Reset(filterstate.Values(req.Query))
	response.Write(w, r, h.Logger, h.resolve(values), nil, http.StatusOK)
}

// PriceHandler handles POST /v1/price.
// @Summary Compute a display price
// @Description Applies a percentage discount with half-up rounding and returns the three-way installment.
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body PriceRequest true "Price and discount percent"
// @Success 200 {object} pricing.DisplayPrice
// @Failure 400 {object} domain.ErrorResponse
// @Router /price [post]
func (h *Handler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := response.Decode(w, r, &req, false); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	response.Write(w, r, h.Logger, pricing.ComputeDisplayPrice(req.Price, req.DiscountPercent), nil, http.StatusOK)
}
