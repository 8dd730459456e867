package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khipulab/khipu/cmd/khipud/handlers"
	httptestutil "github.com/khipulab/khipu/internal/testutils/http"
	apidatasets "github.com/khipulab/khipu/pkg/api/types/datasets"
	"github.com/khipulab/khipu/pkg/domain"
	mocks "github.com/khipulab/khipu/pkg/domain/dataset/db/mock"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
)

func bindingForTest(datasetId int) domain.MessageBinding {
	createdAt := time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC)
	return domain.MessageBinding{
		Dataset: domain.Dataset{
			Id: datasetId, Name: "reactor-telemetry", Description: "live readings",
			Type: domain.InferenceData, Source: domain.SourceBroker,
			CreatedAt: createdAt, UpdatedAt: createdAt,
		},
		Broker: domain.Broker{
			Id: 3, Name: "plant-kafka", Address: "10.0.0.8", Port: 9092, CreatedAt: createdAt,
		},
		Topic: domain.Topic{
			Id: 11, Name: "telemetry", Schema: map[string]interface{}{},
			BrokerId: 3, CreatedAt: createdAt,
		},
	}
}

func TestRegisterMessageBindingHandler(t *testing.T) {

	t.Run("when the binding is created, it responds 201 with the composite view", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.RegisterMessageBinding = func(
			_ context.Context, spec domain.DatasetSpec, brokerId int, topicId int,
		) (domain.MessageBinding, error) {
			binding := bindingForTest(7)
			binding.Dataset.Name = spec.Name
			return binding, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/datasets/message/",
			strings.NewReader(`{
				"name": "reactor-telemetry",
				"description": "live readings",
				"datasetType": 1,
				"brokerId": 3,
				"topicId": 11
			}`),
			httptestutil.ContentType("application/json"),
		)

		if err := handlers.RegisterMessageBindingHandler(mckDataset)(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusCreated {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusCreated)
		}

		actual := apidatasets.MessageBinding{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Dataset.DatasetId != 7 || actual.Broker.BrokerId != 3 || actual.Topic.TopicId != 11 {
			t.Errorf("composite view mismatch: %+v", actual)
		}
		if actual.Dataset.SourceType != int(domain.SourceBroker) {
			t.Errorf("dataset should be broker sourced: %+v", actual.Dataset)
		}

		if mckDataset.Calls.RegisterMessageBinding.Times() != 1 {
			t.Fatal("RegisterMessageBinding is not called once")
		}
		call := mckDataset.Calls.RegisterMessageBinding.Last()
		if call.BrokerId != 3 || call.TopicId != 11 || call.Spec.Type != domain.InferenceData {
			t.Errorf("RegisterMessageBinding called with wrong args: %+v", call)
		}
	})

	t.Run("when the dataset type is unknown, it responds 400 without touching the database", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/datasets/message/",
			strings.NewReader(`{"name": "x", "description": "", "datasetType": 9, "brokerId": 3, "topicId": 11}`),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.RegisterMessageBindingHandler(mckDataset)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusBadRequest)
		}
		if mckDataset.Calls.RegisterMessageBinding.Times() != 0 {
			t.Error("RegisterMessageBinding is called for an unknown dataset type")
		}
	})

	t.Run("when broker or topic is missing, it responds 404", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.RegisterMessageBinding = func(
			context.Context, domain.DatasetSpec, int, int,
		) (domain.MessageBinding, error) {
			return domain.MessageBinding{}, kpgerr.Missing{Table: "topic", Identity: "topic_id=99"}
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/datasets/message/",
			strings.NewReader(`{"name": "x", "description": "", "datasetType": 0, "brokerId": 3, "topicId": 99}`),
			httptestutil.ContentType("application/json"),
		)

		err := handlers.RegisterMessageBindingHandler(mckDataset)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestGetMessageBindingHandler(t *testing.T) {

	t.Run("when the binding resolves, it responds 200 with the composite view", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.GetMessageBinding = func(_ context.Context, datasetId int) (domain.MessageBinding, error) {
			return bindingForTest(datasetId), nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/datasets/7/message/")
		c.SetPath("/api/datasets/:datasetId/message/")
		c.SetParamNames("datasetId")
		c.SetParamValues("7")

		if err := handlers.GetMessageBindingHandler(mckDataset, "datasetId")(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusOK)
		}

		actual := apidatasets.MessageBinding{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		if actual.Dataset.DatasetId != 7 || actual.Topic.Name != "telemetry" {
			t.Errorf("composite view mismatch: %+v", actual)
		}
	})

	t.Run("when any hop of the chain is missing, it responds 404", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.GetMessageBinding = func(_ context.Context, datasetId int) (domain.MessageBinding, error) {
			return domain.MessageBinding{}, kpgerr.Missing{
				Table: "dataset", Identity: "dataset_id=7 (message binding)",
			}
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/datasets/7/message/")
		c.SetPath("/api/datasets/:datasetId/message/")
		c.SetParamNames("datasetId")
		c.SetParamValues("7")

		err := handlers.GetMessageBindingHandler(mckDataset, "datasetId")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}

func TestDeregisterMessageBindingHandler(t *testing.T) {

	t.Run("when the binding exists, it responds 204", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.DeregisterMessageBinding = func(context.Context, int) error { return nil }

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/datasets/7/message/")
		c.SetPath("/api/datasets/:datasetId/message/")
		c.SetParamNames("datasetId")
		c.SetParamValues("7")

		if err := handlers.DeregisterMessageBindingHandler(mckDataset, "datasetId")(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusNoContent)
		}
		if mckDataset.Calls.DeregisterMessageBinding.Times() != 1 ||
			mckDataset.Calls.DeregisterMessageBinding.Last().DatasetId != 7 {
			t.Errorf("DeregisterMessageBinding called wrongly: %+v", mckDataset.Calls.DeregisterMessageBinding)
		}
	})

	t.Run("when the dataset is not broker sourced, it responds 404", func(t *testing.T) {
		mckDataset := mocks.NewDatasetInterface()
		mckDataset.Impl.DeregisterMessageBinding = func(context.Context, int) error {
			return kpgerr.Missing{Table: "dataset", Identity: "dataset_id=7 (broker sourced)"}
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/datasets/7/message/")
		c.SetPath("/api/datasets/:datasetId/message/")
		c.SetParamNames("datasetId")
		c.SetParamValues("7")

		err := handlers.DeregisterMessageBindingHandler(mckDataset, "datasetId")(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
