package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"artistpulse/internal/imagecheck"
	"artistpulse/internal/logging"
	"artistpulse/internal/metrics"
	"artistpulse/internal/model"
	"artistpulse/internal/report"
)

const serviceName = "artistpulse"

// ReportBuilder builds the analysis report for a user.
type ReportBuilder interface {
	Build(ctx context.Context, userID string) (report.Report, error)
}

// ImageValidator checks an uploaded image against a prompt.
type ImageValidator interface {
	Validate(ctx context.Context, up *imagecheck.Upload, prompt string) (model.ImageVerdict, error)
}

type handlers struct {
	reports ReportBuilder
	images  ImageValidator
	log     logging.Logger
}

// NewRouter wires the API routes and middleware.
func NewRouter(reports ReportBuilder, images ImageValidator, log logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.Discard()
	}
	r := gin.New()
	r.MaxMultipartMemory = imagecheck.MaxUploadBytes
	r.Use(RequestID(), Logging(log), Recovery(log), Metrics())

	h := &handlers{reports: reports, images: images, log: log}
	r.GET("/", h.report)
	r.POST("/images/validate", h.validateImage)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func (h *handlers) report(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	rep, err := h.reports.Build(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *handlers) validateImage(c *gin.Context) {
	var up *imagecheck.Upload
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			h.fail(c, err)
			return
		}
		// one byte past the limit lets Validate tell an oversized file apart
		data, err := io.ReadAll(io.LimitReader(f, imagecheck.MaxUploadBytes+1))
		_ = f.Close()
		if err != nil {
			h.fail(c, err)
			return
		}
		up = &imagecheck.Upload{MIMEType: fh.Header.Get("Content-Type"), Data: data}
	}
	verdict, err := h.images.Validate(c.Request.Context(), up, c.PostForm("prompt"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// fail records err for the logging middleware and writes the error body.
// Internal failures get a generic message.
func (h *handlers) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// Serve runs the router on addr until ctx is cancelled, then drains
// in-flight requests for up to 30 seconds.
func Serve(ctx context.Context, addr string, handler http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// report builds wait on several LLM calls
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logging.Fields{"addr": addr, "service": serviceName}).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("HTTP server stopped")
	return nil
}
