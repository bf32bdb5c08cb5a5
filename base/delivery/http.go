package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrUnknownToken, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{auction.ErrAuctionNotFound, http.StatusNotFound},
	{auction.ErrParametersNotFound, http.StatusNotFound},
	{auction.ErrAuctionAlreadyRunning, http.StatusConflict},
	{auction.ErrAuctionAlreadyFinalized, http.StatusConflict},
	{auction.ErrInsufficientTokensAvailable, http.StatusConflict},
	{auction.ErrAuctionNotEnded, http.StatusTooEarly},
	{auction.ErrAuctionEnded, http.StatusConflict},
	{auction.ErrInvalidTokenAmount, http.StatusBadRequest},
	{auction.ErrInvalidParameters, http.StatusBadRequest},
	{auction.ErrInsufficientBalance, http.StatusBadRequest},
	{domain.ErrInsufficientBalance, http.StatusBadRequest},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrInvalidPercentage, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{decay.ErrUnsupportedDecimals, http.StatusBadRequest},
}

// StatusOf maps err to the http status it is reported with, status is used
// for errors nothing maps
func StatusOf(err error, status int) int {
	for _, es := range errStatus {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return status
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
