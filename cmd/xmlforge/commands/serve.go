/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: serve.go
Description: Serve command implementation. Exposes the conversion pipeline over HTTP:
multipart uploads on /upload/ and /transform/, conversion statistics on /stats and a
health probe on /healthz.
*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kleascm/xmlforge/pkg/core"
	"github.com/kleascm/xmlforge/pkg/ingest"
	"github.com/kleascm/xmlforge/pkg/interfaces"
	"github.com/kleascm/xmlforge/pkg/logging"
	"github.com/kleascm/xmlforge/pkg/monitoring"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultMaxUploadSize bounds request bodies when server.max_upload_size is unset
const DefaultMaxUploadSize = 10 << 20

// ServerConfig holds the HTTP adapter settings
type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	MaxUploadSize int64         `mapstructure:"max_upload_size"`
	StatsInterval time.Duration `mapstructure:"stats_interval"`
}

// ServerConfigFromViper resolves the server settings from flags, environment and the
// config file. Keys are read one by one so that bound flags take effect.
func ServerConfigFromViper() ServerConfig {
	config := ServerConfig{
		Addr:          viper.GetString("server.addr"),
		MaxUploadSize: viper.GetInt64("server.max_upload_size"),
		StatsInterval: viper.GetDuration("server.stats_interval"),
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	return config
}

// RunServe starts the HTTP server and blocks until interrupted
func RunServe(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	config, err := ConversionConfig()
	if err != nil {
		return err
	}

	serverConfig := ServerConfigFromViper()

	stats := monitoring.NewStats()
	converter, err := core.NewConverter(config, logger.GetLogger(), logging.NewConversionReporter(logger), stats)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serverConfig.StatsInterval > 0 {
		go stats.Run(ctx, serverConfig.StatsInterval, func(s monitoring.Snapshot) {
			logStats(logger, s)
		})
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              serverConfig.Addr,
		Handler:           NewRouter(converter, stats, logger.GetLogger(), serverConfig.MaxUploadSize),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.GetLogger().WithField("addr", serverConfig.Addr).Info("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.GetLogger().Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logStats(logger, stats.Snapshot())
	return nil
}

func logStats(logger *logging.Logger, s monitoring.Snapshot) {
	logger.LogStats(s.Conversions, s.Failures, logrus.Fields{
		"bytes_in":     s.BytesIn,
		"avg_duration": s.AvgDuration,
	})
}

// NewRouter builds the HTTP handler around converter. maxUploadSize <= 0 selects
// DefaultMaxUploadSize.
func NewRouter(converter *core.Converter, stats *monitoring.Stats, logger logrus.FieldLogger, maxUploadSize int64) *gin.Engine {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadSize
	r.Use(gin.Recovery(), requestLogger(logger), limitBody(maxUploadSize))

	r.POST("/upload/", func(c *gin.Context) {
		name, data, err := readUpload(c)
		if err != nil {
			abortUpload(c, err)
			return
		}
		format := detectFormat("", name, data)
		c.JSON(http.StatusOK, gin.H{
			"message":   "File uploaded successfully",
			"file":      name,
			"size":      len(data),
			"format":    format.String(),
			"mime_type": format.MIMEType(),
		})
	})

	r.POST("/transform/", func(c *gin.Context) {
		name, data, err := readUpload(c)
		if err != nil {
			abortUpload(c, err)
			return
		}

		format := detectFormat(c.Query("format"), name, data)
		result, err := converter.Convert(data, format)
		if err != nil {
			status := http.StatusInternalServerError
			if interfaces.IsInputError(err) {
				status = http.StatusBadRequest
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "kind": interfaces.KindOf(err)})
			return
		}

		c.Header("X-Request-ID", result.ID)
		c.PureJSON(http.StatusOK, Envelope{XML: result.Markup, XSD: result.Schema})
	})

	r.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.Snapshot())
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// detectFormat resolves the upload format; an unknown name yields FormatUnknown,
// which the converter rejects as unsupported
func detectFormat(name, fileName string, data []byte) interfaces.Format {
	if name != "" {
		if f, err := interfaces.ParseFormat(name); err == nil {
			return f
		}
		return interfaces.FormatUnknown
	}
	if f := interfaces.FormatFromName(fileName); f != interfaces.FormatUnknown {
		return f
	}
	return ingest.FormatFromContent(data)
}

// readUpload returns the name and content of the multipart "file" field
func readUpload(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func abortUpload(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file: %v", err)})
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("HTTP request")
			return
		}
		entry.Debug("HTTP request")
	}
}
