package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/buyandburn"
	"github.com/x-xyz/goauction/middleware"
)

type handler struct {
	bu buyandburn.Usecase
}

func New(e *echo.Echo, bu buyandburn.Usecase) {
	h := &handler{bu}
	g := e.Group("/buyandburn/:asset", middleware.IsValidAddress("asset"))
	g.GET("", h.getAuction)
	g.GET("/price", h.getPrice)
	g.GET("/quote", h.getQuote)
	g.GET("/params", h.getParams)
	g.PUT("/params", h.setParams)
	g.POST("/start", h.start)
	g.POST("/buy", h.buy)
	g.POST("/finalize", h.finalize)
}

func asset(c echo.Context) domain.Address {
	return domain.Address(c.Param("asset"))
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.bu.GetAuction(ctx, asset(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	price, err := h.bu.GetCurrentPrice(ctx, asset(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View().WithPrice(price))
}

func (h *handler) getPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	price, err := h.bu.GetCurrentPrice(ctx, asset(c))
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
	due, err := h.bu.Quote(ctx, asset(c), quantity)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"quantity": p.Quantity, "payment": due.String()})
}

func (h *handler) getParams(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p, err := h.bu.GetAuctionParameters(ctx, asset(c))
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

	if err := h.bu.SetAuctionParameters(ctx, asset(c), p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p.View())
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

	a, err := h.bu.StartAuction(ctx, domain.Address(b.Kicker), asset(c))
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
	paid, err := h.bu.BuyTokens(ctx, asset(c), domain.Address(b.Buyer), quantity)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"quantity": b.Quantity, "paid": paid.String()})
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.bu.FinalizeAuction(ctx, asset(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a.View())
}
