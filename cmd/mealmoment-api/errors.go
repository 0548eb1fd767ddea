package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/mealmoment/internal/cart"
	"github.com/MikeMC777/mealmoment/internal/catalog"
	"github.com/MikeMC777/mealmoment/internal/httpx"
	"github.com/MikeMC777/mealmoment/internal/order"
	"github.com/MikeMC777/mealmoment/internal/user"
)

// statusFor maps domain errors onto HTTP status codes; 0 means unmapped.
func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrAlreadyExist),
		errors.Is(err, catalog.ErrAlreadyExist),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, cart.ErrItemUnavailable):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidInput),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidOwner),
		errors.Is(err, catalog.ErrInvalidMenuItem),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrStateNotFound),
		errors.Is(err, catalog.ErrCityNotFound),
		errors.Is(err, catalog.ErrInvalidLocation),
		errors.Is(err, user.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	}
	return 0
}

func writeError(c *gin.Context, err error) {
	if code := statusFor(err); code != 0 {
		httpx.AbortError(c, code, err.Error())
		return
	}
	httpx.Internal(c, err)
}
