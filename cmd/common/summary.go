package common

import (
	"log"

	"github.com/danieldk/embednet"
)

// LogSummary logs the statistics of the collected distances.
func LogSummary(logger *log.Logger, summary *embednet.Summary) {
	stats, ok := summary.Stats()
	if !ok {
		logger.Print("summary: no distances between different words")
		return
	}

	logger.Printf("summary: %d distances, min %g, max %g, mean %g, stddev %g",
		stats.Count, stats.Min, stats.Max, stats.Mean, stats.StdDev)

	for _, p := range stats.Percentiles {
		logger.Printf("summary: p%.0f %g", p.P*100, p.Value)
	}
}
