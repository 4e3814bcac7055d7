package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/unidoc/unioffice/v2/common/license"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/data/store"
	jobmodel "github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/internal/handlers"
	"github.com/corpagent/reviewAPI/internal/job"
	"github.com/corpagent/reviewAPI/internal/rag/embedding/googleEmbedding"
	"github.com/corpagent/reviewAPI/internal/rag/llm/gemini"
	"github.com/corpagent/reviewAPI/internal/review"
	"github.com/corpagent/reviewAPI/internal/server"
	"github.com/corpagent/reviewAPI/internal/worker"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//docx handling needs the metered key before the first document is opened
	if key := os.Getenv(config.UnidocLicenseEnv); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			logger.Error("Could not set document license key", "err", err)
			return
		}
	} else {
		logger.Warn("Document license key is not set", "env", config.UnidocLicenseEnv)
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisArtifactStore := store.GetRedisArtifactStore(serviceContext)
	if redisJobStore == nil || redisArtifactStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.ArtifactStore = store.InitInMemoryArtifactStore()
	} else {
		serviceConfig.JobStore = redisJobStore
		serviceConfig.ArtifactStore = redisArtifactStore
	}
	service := job.InitJobService(serviceConfig)

	googleAPIKey := os.Getenv(config.GoogleAPIKeyEnv)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, googleAPIKey)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, googleAPIKey)

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	reviewService := review.NewService(embeddingService, llmProvider, serviceConfig.ArtifactStore)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, reviewService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
