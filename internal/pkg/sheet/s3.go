package sheet

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// S3GetObjectAPI is the subset of *s3.Client used by S3Provider.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Provider serves `<Prefix><name>.csv` objects of Bucket as sheets.
type S3Provider struct {
	Client S3GetObjectAPI
	Bucket string

	// Prefix is for the objects in the bucket with no leading slash but optionally (typically) with trailing slash
	// e.g. "sheets/" or simply "" (empty string)
	Prefix string
}

func (p *S3Provider) Table(ctx context.Context, name string) (*Table, error) {
	key := p.Prefix + name + CSVExt
	out, err := p.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, errors.Wrapf(ErrSheetNotFound, "no such object %q", key)
		}
		var ae smithy.APIError
		if errors.As(err, &ae) && (ae.ErrorCode() == "NotFound" || ae.ErrorCode() == "NoSuchKey") {
			return nil, errors.Wrapf(ErrSheetNotFound, "no such object %q", key)
		}
		return nil, errors.Wrap(err, "failed to invoke GetObject")
	}
	defer out.Body.Close()

	log.Trace().
		Str("evt.name", "sheet.read").
		Str("bucket", p.Bucket).
		Str("key", key).
		Msg("reading s3 sheet")

	return ReadCSV(out.Body, name)
}
