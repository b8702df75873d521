package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "no documents", in: mongo.ErrNoDocuments, want: ErrNotFound},
		{name: "deadline exceeded", in: context.DeadlineExceeded, want: ErrTimeout},
		{name: "wrapped deadline", in: errors.Join(errors.New("find users"), context.DeadlineExceeded), want: ErrTimeout},
		{name: "driver timeout", in: mongo.CommandError{Code: 50, Name: "MaxTimeMSExpired"}, want: ErrTimeout},
		{name: "anything else", in: errors.New("connection refused"), want: ErrUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
