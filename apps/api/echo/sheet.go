package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/grid"
)

var sheetOrderingFields = []string{"name", "created_at", "updated_at"}

type sheetApi struct {
	conf     core.FillConfig
	svc      *grid.Service
	validate *validator.Validate
}

func registerSheetAPI(g *echo.Group, conf core.FillConfig, svc *grid.Service, validate *validator.Validate) {
	api := sheetApi{
		conf:     conf,
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/sheets")
	sg.POST("", api.create)
	sg.GET("", api.query)

	// detail endpoints
	dg := sg.Group("/:name")
	dg.GET("", api.retrieve)
	dg.POST("/rows", api.addRows)
	dg.DELETE("/rows", api.deleteRows)
	dg.PATCH("/cells", api.updateCells)
	dg.POST("/fill", api.fill)
}

// Handlers

func (api *sheetApi) create(ctx echo.Context) error {
	var data grid.NewSheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSheet")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sheet, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating sheet")
	}
	return ctx.JSON(http.StatusCreated, sheet)
}

func (api *sheetApi) query(ctx echo.Context) error {
	sheets, err := api.svc.Query(ctx.Request().Context(), bindOrdering(ctx, sheetOrderingFields...)...)
	if err != nil {
		return errors.Wrap(err, "querying sheets")
	}
	if sheets == nil {
		sheets = []grid.Sheet{}
	}
	return ctx.JSON(http.StatusOK, sheets)
}

func (api *sheetApi) retrieve(ctx echo.Context) error {
	sheet, err := api.svc.Get(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "getting sheet")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *sheetApi) addRows(ctx echo.Context) error {
	var data grid.AddRows
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddRows")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rows, err := api.svc.AddRows(ctx.Request().Context(), ctx.Param("name"), data.Count)
	if err != nil {
		return errors.Wrap(err, "adding rows")
	}
	return ctx.JSON(http.StatusCreated, rows)
}

func (api *sheetApi) deleteRows(ctx echo.Context) error {
	ids := bindIDs(ctx)
	if len(ids) == 0 {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.DeleteRows(ctx.Request().Context(), ctx.Param("name"), ids...); err != nil {
		return errors.Wrap(err, "deleting rows")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sheetApi) updateCells(ctx echo.Context) error {
	var data grid.UpdateCells
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCells")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	updates, err := api.svc.UpdateCells(ctx.Request().Context(), ctx.Param("name"), data)
	if err != nil {
		return errors.Wrap(err, "updating cells")
	}
	return ctx.JSON(http.StatusOK, updates)
}

func (api *sheetApi) fill(ctx echo.Context) error {
	var data grid.FillRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FillRequest")
	}
	if err := data.Validate(api.validate, api.conf.MaxCount); err != nil {
		return err
	}

	updates, err := api.svc.Fill(ctx.Request().Context(), ctx.Param("name"), data)
	if err != nil {
		return errors.Wrap(err, "filling sheet")
	}
	return ctx.JSON(http.StatusOK, updates)
}
