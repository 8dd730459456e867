package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apidatasets "github.com/khipulab/khipu/pkg/api/types/datasets"
	apierr "github.com/khipulab/khipu/pkg/api/types/errors"
	binddatasets "github.com/khipulab/khipu/pkg/bindings/datasets"
	"github.com/khipulab/khipu/pkg/domain"
	kdbdataset "github.com/khipulab/khipu/pkg/domain/dataset/db"
)

func RegisterMessageBindingHandler(dbDataset kdbdataset.DatasetInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apidatasets.Spec{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&spec); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		datasetType, err := domain.AsDatasetType(spec.DatasetType)
		if err != nil {
			return apierr.BadRequest("dataset type should be 0, 1 or 2", err)
		}

		binding, err := dbDataset.RegisterMessageBinding(
			ctx,
			domain.DatasetSpec{
				Name: spec.Name, Description: spec.Description, Type: datasetType,
			},
			spec.BrokerId, spec.TopicId,
		)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalid):
				return apierr.BadRequest("dataset spec does not validate", err)
			case errors.Is(err, domain.ErrMissing):
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, binddatasets.ComposeMessageBinding(binding))
	}
}

func GetMessageBindingHandler(dbDataset kdbdataset.DatasetInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		datasetId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("dataset id should be an integer", err)
		}

		binding, err := dbDataset.GetMessageBinding(ctx, datasetId)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeMessageBinding(binding))
	}
}

func DeregisterMessageBindingHandler(dbDataset kdbdataset.DatasetInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		datasetId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("dataset id should be an integer", err)
		}

		if err := dbDataset.DeregisterMessageBinding(ctx, datasetId); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
