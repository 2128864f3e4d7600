package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email      string  `validate:"required,email"`
	Visibility string  `validate:"required,oneof=inner outer"`
	Weight     float64 `validate:"gte=0,lte=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sampleRequest
		wantErr string
	}{
		{
			name:  "valid",
			input: sampleRequest{Email: "a@example.com", Visibility: "inner", Weight: 0.5},
		},
		{
			name:    "missing email",
			input:   sampleRequest{Visibility: "outer"},
			wantErr: "email is required",
		},
		{
			name:    "bad enum",
			input:   sampleRequest{Email: "a@example.com", Visibility: "public"},
			wantErr: "visibility must be one of: inner outer",
		},
		{
			name:    "weight above bound",
			input:   sampleRequest{Email: "a@example.com", Visibility: "inner", Weight: 1.5},
			wantErr: "weight must be at most 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
