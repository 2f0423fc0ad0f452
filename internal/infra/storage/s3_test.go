//go:build unit

package storage

import (
	"bytes"
	"context"
	"testing"

	"rental-backoffice/internal/pkg/config"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutObject struct {
	mock.Mock
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestPut(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantURL string
	}{
		{
			name:    "aws virtual-hosted url",
			cfg:     config.StorageConfig{Bucket: "docs", Region: "eu-west-1"},
			wantURL: "https://docs.s3.eu-west-1.amazonaws.com/bookings/b1/id.pdf",
		},
		{
			name:    "custom endpoint uses path style",
			cfg:     config.StorageConfig{Bucket: "docs", Region: "us-east-1", Endpoint: "http://minio:9000/"},
			wantURL: "http://minio:9000/docs/bookings/b1/id.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockPutObject)
			client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
				return *in.Bucket == "docs" && *in.Key == "bookings/b1/id.pdf" &&
					*in.ContentType == "application/pdf" && *in.ContentLength == 3
			})).Return(&s3.PutObjectOutput{}, nil)

			url, err := NewS3Store(client, tt.cfg).Put(context.Background(), "bookings/b1/id.pdf", "application/pdf", bytes.NewReader([]byte("pdf")), 3)

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
			client.AssertExpectations(t)
		})
	}
}

func TestPutFailure(t *testing.T) {
	client := new(mockPutObject)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	url, err := NewS3Store(client, config.StorageConfig{Bucket: "docs"}).Put(context.Background(), "k", "text/plain", bytes.NewReader(nil), 0)

	assert.Empty(t, url)
	assert.ErrorIs(t, err, assert.AnError)
}
