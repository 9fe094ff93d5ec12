package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/smartfill/core"
)

var (
	orderingParam = "ordering"
	idParam       = "id"
)

// bindOrdering reads `?ordering=name,-updated_at`, keeping only the allowed fields.
func bindOrdering(ctx echo.Context, allowed ...string) []core.DBOrdering {
	return core.ParseOrderings(ctx.QueryParam(orderingParam), allowed...)
}

// bindIDs accepts both `?id=a&id=b` and `?id=a,b`.
func bindIDs(ctx echo.Context) []string {
	ids := make([]string, 0)
	for _, val := range ctx.QueryParams()[idParam] {
		ids = append(ids, core.SplitList(val)...)
	}
	return ids
}
