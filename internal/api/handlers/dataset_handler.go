package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dcbills/tracker/internal/dataset"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/internal/stats"
	"github.com/dcbills/tracker/pkg/logger"
	"github.com/dcbills/tracker/pkg/utils"
)

// DatasetHandler serves the persisted dataset read-only. The files on
// disk are the source of truth (the offline scripts own all writes), so
// every request reads fresh bytes and relies on ETags to keep repeat
// traffic cheap.
type DatasetHandler struct {
	datasetPath string
}

func NewDatasetHandler(datasetPath string) *DatasetHandler {
	return &DatasetHandler{datasetPath: datasetPath}
}

// GetBills serves the raw bill dataset document.
func (h *DatasetHandler) GetBills(c *fiber.Ctx) error {
	data, err := os.ReadFile(h.datasetPath)
	if err != nil {
		logger.Error("failed to read dataset", zap.Error(err))
		metrics.DatasetRequests.WithLabelValues("bills", "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "dataset unavailable",
		})
	}

	etag := `"` + utils.HashBytes(data) + `"`
	c.Set("ETag", etag)
	if c.Get("If-None-Match") == etag {
		metrics.DatasetRequests.WithLabelValues("bills", "not_modified").Inc()
		return c.SendStatus(fiber.StatusNotModified)
	}

	metrics.DatasetRequests.WithLabelValues("bills", "ok").Inc()
	c.Set("Content-Type", "application/json")
	return c.Send(data)
}

// GetStats computes aggregate stats from the current dataset.
func (h *DatasetHandler) GetStats(c *fiber.Ctx) error {
	doc, err := dataset.Load(h.datasetPath)
	if err != nil {
		logger.Error("failed to load dataset", zap.Error(err))
		metrics.DatasetRequests.WithLabelValues("stats", "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "dataset unavailable",
		})
	}

	metrics.DatasetRequests.WithLabelValues("stats", "ok").Inc()
	return c.JSON(stats.Build(doc))
}
