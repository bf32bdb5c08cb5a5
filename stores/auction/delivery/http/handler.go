package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

type handler struct {
	au     auction.Usecase
	events auction.EventRepo
}

// New registers the read endpoints shared by every flow
func New(e *echo.Echo, au auction.Usecase, events auction.EventRepo) {
	h := &handler{au: au, events: events}
	g := e.Group("/auctions")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/events", h.getEvents)
}

type listParams struct {
	Source    string `query:"source"`
	Asset     string `query:"asset"`
	Finalized string `query:"finalized" validate:"omitempty,oneof=true false"`
	SortBy    string `query:"sortBy"`
	SortDir   string `query:"sortDir"`
	Offset    int32  `query:"offset" validate:"gte=0"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=100"`
}

func (p *listParams) options() []auction.FindAllOptions {
	opts := []auction.FindAllOptions{}
	if p.Source != "" {
		opts = append(opts, auction.WithSource(domain.Address(p.Source)))
	}
	if p.Asset != "" {
		opts = append(opts, auction.WithAsset(domain.Address(p.Asset)))
	}
	if p.Finalized != "" {
		opts = append(opts, auction.WithFinalized(p.Finalized == "true"))
	}
	if p.SortBy != "" {
		dir := domain.SortDir(domain.SortDirDesc)
		if p.SortDir == "asc" {
			dir = domain.SortDirAsc
		}
		opts = append(opts, auction.WithSort(p.SortBy, dir))
	}
	limit := p.Limit
	if limit == 0 {
		limit = 20
	}
	return append(opts, auction.WithPagination(p.Offset, limit))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, count, err := h.au.ListAuctions(ctx, p.options()...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	items := make([]*auction.View, 0, len(res))
	for _, a := range res {
		items = append(items, a.View())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": count,
	})
}

func parseId(c echo.Context) (auction.Id, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrBadParamInput
	}
	return auction.Id(id), nil
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.au.GetAuctionById(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View())
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.events.FindByAuction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
