package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates a domain or application error into a ProblemDetail.
// It reports false when the error is not one it recognizes.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder sends Problem Details responses, consulting a chain of
// error mappers so each bounded context can contribute its own translations.
type ChainedResponder struct {
	baseURI string
	mappers []ErrorMapper
}

// NewChainedResponder builds a responder. baseURI, when non-empty, is
// prepended to relative problem type URIs.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{baseURI: baseURI, mappers: mappers}
}

// Respond writes the problem with the problem+json content type. The request
// path becomes the instance when the problem does not set one.
func (r *ChainedResponder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError runs err through the mapper chain. Errors no mapper claims
// fall back to a 500, unless the error already is a ProblemDetail.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}
