package bookstoreserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/bookworks/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
	orderapp "github.com/bookworks/bookstore-api/internal/domains/orders/application"
	orderdomain "github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	orderports "github.com/bookworks/bookstore-api/internal/domains/orders/ports"
	userapp "github.com/bookworks/bookstore-api/internal/domains/users/application"
	userports "github.com/bookworks/bookstore-api/internal/domains/users/ports"
	apierrors "github.com/bookworks/bookstore-api/internal/shared/errors"
)

// responder maps bounded-context errors onto RFC 7807 responses.
var responder = apierrors.NewChainedResponder("",
	orderErrorMapper,
	catalogErrorMapper,
	userErrorMapper,
)

func orderErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *orderdomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		problem := apierrors.ErrConflict.WithDetail(stockErr.Error()).
			WithExtension("bookId", stockErr.BookID).
			WithExtension("requested", stockErr.Requested).
			WithExtension("available", stockErr.Available)
		return problem, true
	}
	switch {
	case errors.Is(err, orderdomain.ErrCancelDelivered):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrBookNotFound), errors.Is(err, orderports.ErrUserNotFound):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrBookNotFound),
		errors.Is(err, catalogports.ErrAuthorNotFound),
		errors.Is(err, catalogports.ErrCategoryNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func userErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError routes any service failure through the problem responder.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError preserves simple call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	responder.Respond(c, problem)
}
