// Package archiver publishes battle log sheets to S3: a live CSV object read back by
// sheet.S3Provider, and immutable gzip-compressed daily copies.
package archiver

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/pkg/sheet"
)

const (
	ArchiveExt          = ".csv.gz"
	ArchiveDir          = "archive/"
	LocalTempDirPattern = "siegebackend-archiver-*"
)

var ErrFileAlreadyExists = errors.New("file already exists")

// S3API is the subset of *s3.Client used by Archiver.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Archiver struct {
	S3Client S3API
	S3Bucket string

	// S3Prefix is for the files in the bucket with no leading slash but optionally (typically) with trailing slash
	// e.g. "sheets/" or simply "" (empty string)
	S3Prefix string

	logger *zerolog.Logger
}

func (a *Archiver) initLogger() {
	if a.logger == nil {
		logger := log.With().
			Str("module", "archiver").
			Str("bucket", a.S3Bucket).
			Logger()
		a.logger = &logger
	}
}

// LiveKey is the key sheet.S3Provider reads the sheet called name from.
func (a *Archiver) LiveKey(name string) string {
	return a.S3Prefix + name + sheet.CSVExt
}

// ArchiveKey is the key of the daily copy of the sheet called name, dated in UTC.
func (a *Archiver) ArchiveKey(name string, date time.Time) string {
	return a.S3Prefix + ArchiveDir + name + "/" + name + "_" + date.UTC().Format("2006-01-02") + ArchiveExt
}

// Publish overwrites the live object of table.
func (a *Archiver) Publish(ctx context.Context, table *sheet.Table) error {
	a.initLogger()

	var buf bytes.Buffer
	if err := sheet.WriteCSV(&buf, table); err != nil {
		return errors.Wrap(err, "failed to render csv")
	}

	key := a.LiveKey(table.Name)
	if _, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv; charset=utf-8"),
	}); err != nil {
		return errors.Wrap(err, "failed to invoke PutObject")
	}
	a.logger.Info().Str("key", key).Int("rows", len(table.Rows)).Msg("published live sheet")
	return nil
}

// Archive uploads a gzip-compressed copy of table for date. It returns an error
// wrapping ErrFileAlreadyExists when that day has been archived already.
func (a *Archiver) Archive(ctx context.Context, table *sheet.Table, date time.Time) error {
	a.initLogger()

	key := a.ArchiveKey(table.Name, date)
	if err := a.assertS3FileNonExistence(ctx, key); err != nil {
		return err
	}
	a.logger.Trace().Str("key", key).Msg("asserted S3 file non-existence")

	dir, err := os.MkdirTemp(os.TempDir(), LocalTempDirPattern)
	if err != nil {
		return errors.Wrap(err, "failed to create temporary directory")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			a.logger.Warn().Err(err).Str("dir", dir).Msg("failed to remove temporary directory")
		}
	}()

	localPath := path.Join(dir, path.Base(key))
	if err := writeGzipCSV(localPath, table); err != nil {
		return errors.Wrap(err, "failed to archive to local file")
	}
	a.logger.Trace().Str("localPath", localPath).Msg("archived to local file")

	file, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	if _, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(a.S3Bucket),
		Key:               aws.String(key),
		Body:              file,
		StorageClass:      types.StorageClassGlacierIr,
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}); err != nil {
		return errors.Wrap(err, "failed to invoke PutObject")
	}
	a.logger.Info().Str("key", key).Int("rows", len(table.Rows)).Msg("archived sheet")
	return nil
}

func (a *Archiver) assertS3FileNonExistence(ctx context.Context, key string) error {
	object, err := a.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotFound" {
			return nil
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrap(ErrFileAlreadyExists, fmt.Sprintf("file \"%s\" already exists in s3 with LastModified \"%s\"", key, object.LastModified))
}

func writeGzipCSV(filePath string, table *sheet.Table) error {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if err := sheet.WriteCSV(gzipWriter, table); err != nil {
		return err
	}
	return gzipWriter.Close()
}
