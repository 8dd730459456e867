package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/khipulab/khipu/cmd/khipud/handlers"
	kcs "github.com/khipulab/khipu/pkg/configs/server"
	kdb "github.com/khipulab/khipu/pkg/domain/khipu/db"
	kpg "github.com/khipulab/khipu/pkg/domain/khipu/db/postgres"
	streamkafka "github.com/khipulab/khipu/pkg/domain/stream/kafka"
	"github.com/khipulab/khipu/pkg/utils/echoutil"
	"github.com/khipulab/khipu/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	// quit on config change, so a supervisor restarts khipud with
	// fresh settings.
	{
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	ctx := context.Background()
	db, err := getDBAccesor(ctx, conf)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err.Error())
	}
	defer db.Close()

	if conf.SchemaRepository != "" {
		if err := db.Schema().Upgrade(ctx); err != nil {
			log.Fatalf("can not upgrade database schema: %s", err)
		}

		sctx, scancel := db.Schema().Context(ctx)
		defer scancel()
		context.AfterFunc(sctx, func() {
			log.Println("database schema is outdated. quit to wait for an upgrade.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by schema update: %s", err)
			}
		})
	}

	reader := streamkafka.New()

	// handlers
	{
		brokerId := "brokerId"
		e.POST("/api/brokers/", handlers.RegisterBrokerHandler(db.Broker()))
		e.GET("/api/brokers/", handlers.ListBrokerHandler(db.Broker()))
		e.PUT("/api/brokers/:brokerId/", handlers.UpdateBrokerHandler(db.Broker(), brokerId))
		e.DELETE("/api/brokers/:brokerId/", handlers.DeleteBrokerHandler(db.Broker(), brokerId))

		e.POST("/api/brokers/:brokerId/topics/", handlers.RegisterTopicHandler(db.Topic(), brokerId))
	}

	{
		topicId := "topicId"
		e.GET("/api/topics/", handlers.ListTopicHandler(db.Topic()))
		e.PUT("/api/topics/:topicId/", handlers.UpdateTopicHandler(db.Topic(), topicId))
		e.DELETE("/api/topics/:topicId/", handlers.DeleteTopicHandler(db.Topic(), topicId))
	}

	{
		datasetId := "datasetId"
		e.POST("/api/datasets/message/", handlers.RegisterMessageBindingHandler(db.Dataset()))
		e.GET("/api/datasets/:datasetId/message/", handlers.GetMessageBindingHandler(db.Dataset(), datasetId))
		e.DELETE("/api/datasets/:datasetId/message/", handlers.DeregisterMessageBindingHandler(db.Dataset(), datasetId))

		e.GET("/api/datasets/:datasetId/message/records/", handlers.ReadStreamHandler(db.Dataset(), reader, datasetId))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.ServerPort, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.ServerPort))
	}
}

func getDBAccesor(ctx context.Context, conf *kcs.ServerConfig) (kdb.KhipuDatabase, error) {
	options := []kpg.Option{}
	if conf.SchemaRepository != "" {
		options = append(options, kpg.WithSchemaRepository(conf.SchemaRepository))
	}
	return kpg.New(ctx, conf.DBURI, options...)
}
