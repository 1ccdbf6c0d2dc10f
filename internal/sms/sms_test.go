package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected string
		wantErr  bool
	}{
		{
			name:     "local mobile number",
			phone:    "0771234567",
			expected: "94771234567",
		},
		{
			name:     "local landline number",
			phone:    "0112345678",
			expected: "94112345678",
		},
		{
			name:     "already international",
			phone:    "94771234567",
			expected: "94771234567",
		},
		{
			name:     "formatting characters stripped",
			phone:    "077-123 4567",
			expected: "94771234567",
		},
		{
			name:    "too short",
			phone:   "07712345",
			wantErr: true,
		},
		{
			name:    "unrecognized prefix",
			phone:   "0881234567",
			wantErr: true,
		},
		{
			name:    "empty",
			phone:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FormatPhoneNumber(tt.phone)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidPhoneNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
