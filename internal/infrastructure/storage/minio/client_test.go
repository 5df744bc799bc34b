package minio

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

type ClientTestSuite struct {
	suite.Suite
	log logging.Logger
}

func (s *ClientTestSuite) SetupTest() {
	s.log = logging.NewNopLogger()
}

func (s *ClientTestSuite) TestApplyDefaults() {
	cfg := &MinIOConfig{}
	applyDefaults(cfg)

	assert.Equal(s.T(), "us-east-1", cfg.Region)
	assert.Equal(s.T(), 30*time.Second, cfg.Timeout)
}

func (s *ClientTestSuite) TestNewMinIOClient_RequiresEndpoint() {
	_, err := NewMinIOClient(&MinIOConfig{}, s.log)
	s.Require().Error(err)
	assert.True(s.T(), errors.IsCode(err, errors.ErrCodeValidation))
}

func (s *ClientTestSuite) TestNewMinIOClient_NoNetworkOnConstruction() {
	c, err := NewMinIOClient(&MinIOConfig{Endpoint: "127.0.0.1:1"}, s.log)
	s.Require().NoError(err)
	assert.NotNil(s.T(), c)
}

func (s *ClientTestSuite) TestFetch() {
	var gotBucket, gotKey string
	open := func(_ context.Context, bucket, key string) (io.ReadCloser, error) {
		gotBucket, gotKey = bucket, key
		return io.NopCloser(strings.NewReader("substances: []\n")), nil
	}
	c := newClient(open, &MinIOConfig{Timeout: time.Second}, s.log)

	data, err := c.Fetch(context.Background(), ObjectURI{Bucket: "catalogs", Key: "v2/substances.yaml"})
	s.Require().NoError(err)
	assert.Equal(s.T(), "substances: []\n", string(data))
	assert.Equal(s.T(), "catalogs", gotBucket)
	assert.Equal(s.T(), "v2/substances.yaml", gotKey)
}

func (s *ClientTestSuite) TestFetch_NoSuchKey() {
	open := func(context.Context, string, string) (io.ReadCloser, error) {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	c := newClient(open, &MinIOConfig{}, s.log)

	_, err := c.Fetch(context.Background(), ObjectURI{Bucket: "catalogs", Key: "missing.yaml"})
	s.Require().Error(err)
	assert.True(s.T(), errors.IsCode(err, errors.CodeCatalogLoadFailed))
	assert.Contains(s.T(), err.Error(), "not found")
}

func (s *ClientTestSuite) TestFetch_TooLarge() {
	open := func(context.Context, string, string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(strings.Repeat("x", 11))), nil
	}
	c := newClient(open, &MinIOConfig{}, s.log)
	c.maxSize = 10

	_, err := c.Fetch(context.Background(), ObjectURI{Bucket: "b", Key: "k.yaml"})
	s.Require().Error(err)
	assert.True(s.T(), errors.IsCode(err, errors.CodeCatalogLoadFailed))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestParseObjectURI(t *testing.T) {
	u, err := ParseObjectURI("s3://catalogs/eu/substances.json")
	require.NoError(t, err)
	assert.Equal(t, ObjectURI{Bucket: "catalogs", Key: "eu/substances.json"}, u)
	assert.Equal(t, "s3://catalogs/eu/substances.json", u.String())

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "/etc/catalog.yaml"} {
		_, err := ParseObjectURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsObjectURI(t *testing.T) {
	assert.True(t, IsObjectURI("s3://b/k"))
	assert.True(t, IsObjectURI("S3://b/k"))
	assert.False(t, IsObjectURI("catalog.yaml"))
	assert.False(t, IsObjectURI(""))
}

//Personal.AI order the ending
