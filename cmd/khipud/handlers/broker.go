package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apibrokers "github.com/khipulab/khipu/pkg/api/types/brokers"
	apierr "github.com/khipulab/khipu/pkg/api/types/errors"
	bindbrokers "github.com/khipulab/khipu/pkg/bindings/brokers"
	"github.com/khipulab/khipu/pkg/domain"
	kdbbroker "github.com/khipulab/khipu/pkg/domain/broker/db"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
)

func RegisterBrokerHandler(dbBroker kdbbroker.BrokerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apibrokers.Spec{}
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

		registered, err := dbBroker.Register(ctx, domain.BrokerSpec{
			Name: spec.Name, Address: spec.Address, Port: spec.Port,
		})
		if err != nil {
			return brokerWriteError(err)
		}

		return c.JSON(http.StatusCreated, bindbrokers.ComposeDetail(registered))
	}
}

func ListBrokerHandler(dbBroker kdbbroker.BrokerInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		registered, err := dbBroker.List(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		found := make([]apibrokers.Detail, 0, len(registered))
		for _, b := range registered {
			found = append(found, bindbrokers.ComposeDetail(b))
		}
		return c.JSON(http.StatusOK, found)
	}
}

func UpdateBrokerHandler(dbBroker kdbbroker.BrokerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		brokerId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("broker id should be an integer", err)
		}

		change := apibrokers.Change{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&change); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		updated, err := dbBroker.Update(ctx, brokerId, domain.BrokerPatch{
			Name: change.Name, Address: change.Address, Port: change.Port,
		})
		if err != nil {
			return brokerWriteError(err)
		}

		return c.JSON(http.StatusOK, bindbrokers.ComposeDetail(updated))
	}
}

func DeleteBrokerHandler(dbBroker kdbbroker.BrokerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		brokerId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("broker id should be an integer", err)
		}

		if err := dbBroker.Delete(ctx, brokerId); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func brokerWriteError(err error) error {
	dup := kpgerr.Duplicated{}
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return apierr.BadRequest("broker spec does not validate", err)
	case errors.As(err, &dup):
		return apierr.Conflict(
			"broker name is already taken",
			apierr.WithConflictingId(dup.ExistingId),
			apierr.WithError(err),
		)
	case errors.Is(err, domain.ErrMissing):
		return apierr.NotFound()
	}
	return apierr.InternalServerError(err)
}
