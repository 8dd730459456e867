package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/khipulab/khipu/pkg/api/types/errors"
	binddatasets "github.com/khipulab/khipu/pkg/bindings/datasets"
	"github.com/khipulab/khipu/pkg/domain"
	kdbdataset "github.com/khipulab/khipu/pkg/domain/dataset/db"
	"github.com/khipulab/khipu/pkg/domain/stream"
)

// ReadStreamHandler drains one window of records from the topic behind
// a dataset.
//
// Query parameters:
//
//   - count: cap on returned records. Empty selects the reader default.
//   - offset: "earliest" (default) or "latest".
func ReadStreamHandler(
	dbDataset kdbdataset.DatasetInterface,
	reader stream.Reader,
	paramKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		datasetId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("dataset id should be an integer", err)
		}

		maxRecords := 0
		if raw := c.QueryParam("count"); raw != "" {
			maxRecords, err = strconv.Atoi(raw)
			if err != nil || maxRecords <= 0 {
				return apierr.BadRequest("count should be a positive integer", err)
			}
		}

		policy := domain.OffsetEarliest
		if raw := c.QueryParam("offset"); raw != "" {
			policy, err = domain.AsOffsetPolicy(raw)
			if err != nil {
				return apierr.BadRequest(`offset should be "earliest" or "latest"`, err)
			}
		}

		endpoint, err := dbDataset.ResolveTopicEndpoint(ctx, datasetId)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		window, err := reader.Read(ctx, datasetId, endpoint, policy, maxRecords)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoMessages):
				return c.NoContent(http.StatusNoContent)
			case errors.Is(err, domain.ErrBrokerUnreachable):
				return apierr.BadGateway(
					"check that the registered broker address and port are live", err,
				)
			case errors.Is(err, domain.ErrInvalid):
				return apierr.BadRequest("stream read request does not validate", err)
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeStreamWindow(window))
	}
}
