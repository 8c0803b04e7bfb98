package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"contentai/internal/apihandlers"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ContentAI HTTP API server",
	Long: `Starts an HTTP server exposing content generation, streaming,
PDF export, and usage reporting via a RESTful API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		router := gin.New()
		router.Use(gin.Recovery())
		router.Use(apihandlers.RequestLogger())

		metrics := apihandlers.NewMetrics()
		router.Use(metrics.Middleware())

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			v1.POST("/generate", apiHandler.GenerateHandler)
			v1.GET("/generate/stream", apiHandler.StreamHandler)
			v1.POST("/export/pdf", apiHandler.ExportPDFHandler)
			v1.GET("/usage", apiHandler.UsageHandler)
		}

		router.GET("/health", apiHandler.HealthHandler)
		router.GET("/metrics", metrics.Handler(appInstance.Cache.Len))

		listenAddr := appInstance.Config.Server.Address
		if serveAddr != "" {
			listenAddr = serveAddr
		}
		log.Infof("Starting ContentAI API server on %s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, e.g. ':8080')")
}
