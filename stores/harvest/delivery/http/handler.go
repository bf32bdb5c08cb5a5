package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/harvest"
	"github.com/x-xyz/goauction/middleware"
)

type handler struct {
	hu harvest.Usecase
}

func New(e *echo.Echo, hu harvest.Usecase) {
	h := &handler{hu}
	g := e.Group("/harvest/:source/:asset", middleware.IsValidAddress("source", "asset"))
	g.GET("", h.getAuction)
	g.GET("/price", h.getPrice)
	g.GET("/quote", h.getQuote)
	g.GET("/carryover", h.getCarryover)
	g.GET("/params", h.getParams)
	g.PUT("/params", h.setParams)
	g.POST("/harvest", h.harvest)
	g.POST("/start", h.start)
	g.POST("/buy", h.buy)
	g.POST("/finalize", h.finalize)
}

func keyOf(c echo.Context) auction.Key {
	return harvest.KeyOf(domain.Address(c.Param("source")), domain.Address(c.Param("asset")))
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.hu.GetAuction(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	price, err := h.hu.GetCurrentPrice(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View().WithPrice(price))
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	price, err := h.hu.GetCurrentPrice(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"price": price.String()})
}

func (h *handler) getQuote(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	type params struct {
		Quantity string `query:"quantity" validate:"required,positive_int"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	quantity, _ := new(big.Int).SetString(p.Quantity, 10)
	due, err := h.hu.Quote(ctx, keyOf(c), quantity)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"quantity": p.Quantity, "payment": due.String()})
}

func (h *handler) getCarryover(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	co, err := h.hu.GetCarryover(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{
		"pendingTokens":  co.PendingTokens.String(),
		"unsoldTokens":   co.UnsoldTokens.String(),
		"obtainedTokens": co.ObtainedTokens.String(),
	})
}

func (h *handler) getParams(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p, err := h.hu.GetAuctionParameters(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p.View())
}

func (h *handler) setParams(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	v := &auction.ParamsView{}
	if err := c.Bind(v); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(v); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	p, err := v.ToParameters()
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.hu.SetAuctionParameters(ctx, keyOf(c), p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p.View())
}

func (h *handler) harvest(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	key := keyOf(c)

	amount, err := h.hu.Harvest(ctx, key.Source, key.Asset)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"harvested": amount.String()})
}

func (h *handler) start(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	type body struct {
		Kicker string `json:"kicker" validate:"required,eth_addr"`
	}

	b := &body{}
	if err := c.Bind(b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	key := keyOf(c)
	a, err := h.hu.HarvestAndStartAuction(ctx, domain.Address(b.Kicker), key.Source, key.Asset)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View())
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	type body struct {
		Buyer    string `json:"buyer" validate:"required,eth_addr"`
		Quantity string `json:"quantity" validate:"required,positive_int"`
	}

	b := &body{}
	if err := c.Bind(b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	quantity, _ := new(big.Int).SetString(b.Quantity, 10)
	paid, err := h.hu.BuyTokens(ctx, keyOf(c), domain.Address(b.Buyer), quantity)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"quantity": b.Quantity, "paid": paid.String()})
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.hu.FinalizeAuction(ctx, keyOf(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View())
}
