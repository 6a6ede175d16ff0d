package infrastructure

import (
	"context"
	"errors"
	"io"
	"testing"

	"cv-renderer/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	err   error
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Upload(t *testing.T) {
	userID, cvID := uuid.New(), uuid.New()
	put := &fakePutter{}
	sink := &S3Sink{client: put, cfg: S3Config{Bucket: "cvs", PublicURL: "https://cdn.example.com/"}}

	url, err := sink.Upload(context.Background(), userID, cvID, []byte("%PDF-1.7"))
	require.NoError(t, err)

	key := "cvs/" + userID.String() + "/cv-" + cvID.String() + ".pdf"
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, key, aws.ToString(put.input.Key))
	assert.Equal(t, "cvs", aws.ToString(put.input.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(put.input.ContentType))
	assert.Equal(t, "%PDF-1.7", string(put.body))
}

func TestS3Sink_UploadError(t *testing.T) {
	sink := &S3Sink{client: &fakePutter{err: errors.New("denied")}, cfg: S3Config{Bucket: "cvs"}}
	_, err := sink.Upload(context.Background(), uuid.New(), uuid.New(), []byte("%PDF"))

	var uploadErr *domain.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, uploadErr.Key, "cvs/")
}

func TestS3Sink_PublicURL(t *testing.T) {
	s := &S3Sink{cfg: S3Config{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k.pdf", s.publicURL("k.pdf"))

	s.cfg.Endpoint = "http://localhost:9000/"
	assert.Equal(t, "http://localhost:9000/b/k.pdf", s.publicURL("k.pdf"))
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	assert.Error(t, err)
}
