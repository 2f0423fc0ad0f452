package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	reqdto "rental-backoffice/internal/handler/dto/request"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/handler/middleware"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated = errs.New("request is not authenticated")
	errInvalidID       = errs.Validation("invalid id")
	errInvalidQuery    = errs.Validation("invalid query parameter")
)

func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
	}
	return actor, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrapf(errInvalidID, "%s: %v", name, err), "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"reason": err.Error()})
		return false
	}
	return true
}

// queryParams collects the first parse error so list handlers can read every filter and check once.
type queryParams struct {
	c   *gin.Context
	err error
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) fail(key string, err error) {
	if q.err == nil {
		q.err = errs.Wrapf(errInvalidQuery, "%s: %v", key, err)
	}
}

func (q *queryParams) String(key string) *string {
	v := strings.TrimSpace(q.c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

func (q *queryParams) UUID(key string) *uuid.UUID {
	v := q.String(key)
	if v == nil {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		q.fail(key, err)
		return nil
	}
	return &id
}

func (q *queryParams) Date(key string) *time.Time {
	v := q.String(key)
	if v == nil {
		return nil
	}
	t, err := reqdto.ParseDate(*v)
	if err != nil {
		q.fail(key, err)
		return nil
	}
	return &t
}

func (q *queryParams) Bool(key string) *bool {
	v := q.String(key)
	if v == nil {
		return nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		q.fail(key, err)
		return nil
	}
	return &b
}

func (q *queryParams) Limit() int {
	v := q.String("limit")
	if v == nil {
		return queries.ValidateLimit(0)
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		q.fail("limit", err)
		return 0
	}
	return queries.ValidateLimit(n)
}

func (q *queryParams) Cursor() *queries.Cursor {
	if v := q.String("after"); v != nil {
		return &queries.Cursor{After: *v}
	}
	return nil
}

// Failed aborts the request with 400 when any parameter failed to parse.
func (q *queryParams) Failed() bool {
	if q.err == nil {
		return false
	}
	httperr.Abort(q.c, q.err, "Invalid query parameter")
	return true
}
