package appconfig

import (
	"fmt"
)

const (
	SheetSourcePostgres = "postgres"
	SheetSourceCSV      = "csv"
	SheetSourceS3       = "s3"
)

func (c *ConfigSpec) validate() error {
	switch c.SheetSource {
	case SheetSourcePostgres, SheetSourceCSV:
	case SheetSourceS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("invalid configuration: SIEGE_S3_BUCKET is required when SIEGE_SHEET_SOURCE is %q", SheetSourceS3)
		}
	default:
		return fmt.Errorf("invalid configuration: SIEGE_SHEET_SOURCE must be one of postgres, csv, s3, but got: %q", c.SheetSource)
	}
	if c.TracingEnabled {
		for _, exporter := range c.TracingExporters {
			switch exporter {
			case "jaeger", "otlp", "stdout":
			default:
				return fmt.Errorf("invalid configuration: SIEGE_TRACING_EXPORTERS must only contain jaeger, otlp, stdout, but got: %q", exporter)
			}
		}
		if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
			return fmt.Errorf("invalid configuration: SIEGE_TRACING_SAMPLE_RATE must be within [0, 1], but got: %v", c.TracingSampleRate)
		}
	}
	if c.SubmitRateLimit > 0 && c.SubmitRateWindow <= 0 {
		return fmt.Errorf("invalid configuration: SIEGE_SUBMIT_RATE_WINDOW must be positive when SIEGE_SUBMIT_RATE_LIMIT is set")
	}
	if c.DefaultDeckLimit < 1 {
		return fmt.Errorf("invalid configuration: SIEGE_DEFAULT_DECK_LIMIT must be positive, but got: %d", c.DefaultDeckLimit)
	}
	return nil
}
