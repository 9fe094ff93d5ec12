package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/core/fill"
)

type fillApi struct {
	conf     core.FillConfig
	validate *validator.Validate
	cache    *lru.Cache[string, PredictResponse] // nil when caching is disabled
}

func registerFillAPI(g *echo.Group, conf core.FillConfig, validate *validator.Validate) {
	api := fillApi{
		conf:     conf,
		validate: validate,
	}
	if conf.CacheSize > 0 {
		api.cache, _ = lru.New[string, PredictResponse](conf.CacheSize)
	}

	fg := g.Group("/fill")
	fg.POST("/predict", api.predict)
}

// Handlers

func (api *fillApi) predict(ctx echo.Context) error {
	var data PredictRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PredictRequest")
	}
	if err := data.Validate(api.validate, api.conf.MaxCount); err != nil {
		return err
	}

	key, err := data.cacheKey()
	if err != nil {
		return errors.Wrap(err, "building cache key")
	}
	if api.cache != nil {
		if resp, ok := api.cache.Get(key); ok {
			return ctx.JSON(http.StatusOK, resp)
		}
	}

	pattern := fill.Classify(data.Samples)
	resp := PredictResponse{
		Pattern: pattern.Kind().String(),
		Values:  pattern.Generate(data.Count),
	}
	if api.cache != nil {
		api.cache.Add(key, resp)
	}
	return ctx.JSON(http.StatusOK, resp)
}

type (
	PredictRequest struct {
		Samples []fill.Value `json:"samples" validate:"max=1000"`
		Count   int          `json:"count" validate:"gte=0"`
	}

	PredictResponse struct {
		Pattern string       `json:"pattern"`
		Values  []fill.Value `json:"values"`
	}
)

func (pr *PredictRequest) Validate(validate *validator.Validate, maxCount int) error {
	if err := validate.Struct(pr); err != nil {
		return err
	}
	if maxCount > 0 && pr.Count > maxCount {
		return core.NewFieldError("count", fmt.Sprintf("must be at most %d", maxCount))
	}
	return nil
}

func (pr PredictRequest) cacheKey() (string, error) {
	samples, err := json.Marshal(pr.Samples)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(pr.Count) + ":" + string(samples), nil
}
