package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/khipulab/khipu/pkg/api/types/errors"
	apitopics "github.com/khipulab/khipu/pkg/api/types/topics"
	bindtopics "github.com/khipulab/khipu/pkg/bindings/topics"
	"github.com/khipulab/khipu/pkg/domain"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
	kdbtopic "github.com/khipulab/khipu/pkg/domain/topic/db"
)

func RegisterTopicHandler(dbTopic kdbtopic.TopicInterface, brokerParamKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		brokerId, err := strconv.Atoi(c.Param(brokerParamKey))
		if err != nil {
			return apierr.BadRequest("broker id should be an integer", err)
		}

		spec := apitopics.Spec{}
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

		registered, err := dbTopic.Register(ctx, brokerId, domain.TopicSpec{
			Name: spec.Name, Schema: spec.Schema,
		})
		if err != nil {
			return topicWriteError(err)
		}

		return c.JSON(http.StatusCreated, bindtopics.ComposeDetail(registered))
	}
}

func ListTopicHandler(dbTopic kdbtopic.TopicInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		registered, err := dbTopic.List(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		found := make([]apitopics.Detail, 0, len(registered))
		for _, tp := range registered {
			found = append(found, bindtopics.ComposeDetail(tp))
		}
		return c.JSON(http.StatusOK, found)
	}
}

func UpdateTopicHandler(dbTopic kdbtopic.TopicInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		topicId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("topic id should be an integer", err)
		}

		change := apitopics.Change{}
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

		updated, err := dbTopic.Update(ctx, topicId, domain.TopicPatch{
			Name: change.Name, Schema: change.Schema,
		})
		if err != nil {
			return topicWriteError(err)
		}

		return c.JSON(http.StatusOK, bindtopics.ComposeDetail(updated))
	}
}

func DeleteTopicHandler(dbTopic kdbtopic.TopicInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		topicId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("topic id should be an integer", err)
		}

		if err := dbTopic.Delete(ctx, topicId); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func topicWriteError(err error) error {
	dup := kpgerr.Duplicated{}
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return apierr.BadRequest("topic spec does not validate", err)
	case errors.As(err, &dup):
		return apierr.Conflict(
			"the broker already hosts a topic with that name",
			apierr.WithConflictingId(dup.ExistingId),
			apierr.WithError(err),
		)
	case errors.Is(err, domain.ErrMissing):
		return apierr.NotFound()
	}
	return apierr.InternalServerError(err)
}
