package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantNotFound bool
	}{
		{name: "missing key", err: minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, wantNotFound: true},
		{name: "missing bucket", err: minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404}},
		{name: "access denied", err: minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}},
		{name: "transport failure", err: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			assert.Equal(t, tt.wantNotFound, errors.Is(got, ErrNotFound))
			assert.ErrorContains(t, got, tt.err.Error())
		})
	}
}
