package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swhelper/siege-backend/internal/app/appcontext"
)

func TestValidateSheetSource(t *testing.T) {
	tests := []struct {
		name    string
		spec    ConfigSpec
		wantErr bool
	}{
		{name: "postgres", spec: ConfigSpec{SheetSource: SheetSourcePostgres, DefaultDeckLimit: 10}},
		{name: "csv", spec: ConfigSpec{SheetSource: SheetSourceCSV, DefaultDeckLimit: 10}},
		{name: "s3 with bucket", spec: ConfigSpec{SheetSource: SheetSourceS3, S3Bucket: "logs", DefaultDeckLimit: 10}},
		{name: "s3 without bucket", spec: ConfigSpec{SheetSource: SheetSourceS3, DefaultDeckLimit: 10}, wantErr: true},
		{name: "unknown source", spec: ConfigSpec{SheetSource: "sheets", DefaultDeckLimit: 10}, wantErr: true},
		{name: "zero default limit", spec: ConfigSpec{SheetSource: SheetSourceCSV}, wantErr: true},
		{name: "unknown tracing exporter", spec: ConfigSpec{SheetSource: SheetSourceCSV, DefaultDeckLimit: 10, TracingEnabled: true, TracingExporters: []string{"zipkin"}}, wantErr: true},
		{name: "tracing exporters ignored when disabled", spec: ConfigSpec{SheetSource: SheetSourceCSV, DefaultDeckLimit: 10, TracingExporters: []string{"zipkin"}}},
		{name: "rate limit without window", spec: ConfigSpec{SheetSource: SheetSourceCSV, DefaultDeckLimit: 10, SubmitRateLimit: 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("SIEGE_SHEET_SOURCE", "csv")
	t.Setenv("SIEGE_SHEET_CSV_DIR", "/tmp/sheets")

	conf, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	assert.NoError(t, err)
	assert.Equal(t, "csv", conf.SheetSource)
	assert.Equal(t, "/tmp/sheets", conf.SheetCSVDir)
	assert.Equal(t, "SiegeLogs", conf.SheetName)
	assert.Equal(t, 10, conf.DefaultDeckLimit)
	assert.Equal(t, []string{"jaeger"}, conf.TracingExporters)
	assert.False(t, conf.TracingEnabled)
	assert.Equal(t, 30, conf.SubmitRateLimit)
}
