package limits

import (
	"errors"
	"testing"
)

// TestBodyLengthCalculation verifies that MaxBodyLength leaves room for the header
func TestBodyLengthCalculation(t *testing.T) {
	if MaxBodyLength+HeaderLength != MaxPacketLength {
		t.Errorf("MaxBodyLength + HeaderLength = %d, want %d", MaxBodyLength+HeaderLength, MaxPacketLength)
	}
	if MaxPacketLength != 1<<16-1 {
		t.Errorf("MaxPacketLength = %d, want the u16 maximum", MaxPacketLength)
	}
}

// TestValidateDeclaredLength tests header length validation
func TestValidateDeclaredLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr error
	}{
		{name: "zero", length: 0, wantErr: ErrFrameTooShort},
		{name: "below header", length: 2, wantErr: ErrFrameTooShort},
		{name: "header only", length: 3, wantErr: nil},
		{name: "typical", length: 15, wantErr: nil},
		{name: "maximum", length: MaxPacketLength, wantErr: nil},
		{name: "above maximum", length: MaxPacketLength + 1, wantErr: ErrFrameTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeclaredLength(tt.length)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDeclaredLength(%d) error = %v, wantErr %v", tt.length, err, tt.wantErr)
			}
		})
	}
}

// TestValidateFrameSize tests the generic frame validation function
func TestValidateFrameSize(t *testing.T) {
	tests := []struct {
		name    string
		frame   []byte
		max     int
		wantErr error
	}{
		{name: "nil frame", frame: nil, max: 10, wantErr: ErrFrameEmpty},
		{name: "empty frame", frame: []byte{}, max: 10, wantErr: ErrFrameEmpty},
		{name: "at limit", frame: make([]byte, 10), max: 10, wantErr: nil},
		{name: "over limit", frame: make([]byte, 11), max: 10, wantErr: ErrFrameTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrameSize(tt.frame, tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFrameSize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateBody tests body validation
func TestValidateBody(t *testing.T) {
	if err := ValidateBody(nil); err != nil {
		t.Errorf("ValidateBody(nil) = %v, want nil", err)
	}
	if err := ValidateBody(make([]byte, MaxBodyLength)); err != nil {
		t.Errorf("ValidateBody(max) = %v, want nil", err)
	}
	if err := ValidateBody(make([]byte, MaxBodyLength+1)); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("ValidateBody(max+1) = %v, want ErrFrameTooLarge", err)
	}
}
