package codegen

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-codable/schema"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]string
		want    Options
		wantErr error
	}{
		{
			name: "defaults",
			opts: nil,
			want: Options{Strategy: schema.Strategy{Container: schema.Keyed}, Access: schema.Internal},
		},
		{
			name: "keyed public",
			opts: map[string]string{"container": "keyed", "access": "public"},
			want: Options{Strategy: schema.Strategy{Container: schema.Keyed}, Access: schema.Public},
		},
		{
			name: "single value",
			opts: map[string]string{"container": "singleValue(ID)"},
			want: Options{Strategy: schema.Strategy{Container: schema.SingleValue, Binding: "ID"}},
		},
		{
			name: "enum internal",
			opts: map[string]string{"container": "singleValueForEnum", "access": "internal"},
			want: Options{Strategy: schema.Strategy{Container: schema.SingleValueForEnum}},
		},
		{
			name:    "unknown container",
			opts:    map[string]string{"container": "unkeyed"},
			wantErr: ErrUnknownContainer,
		},
		{
			name:    "single value without binding",
			opts:    map[string]string{"container": "singleValue()"},
			wantErr: ErrUnknownContainer,
		},
		{
			name:    "unclosed binding",
			opts:    map[string]string{"container": "singleValue(ID"},
			wantErr: ErrUnknownContainer,
		},
		{
			name:    "unknown access",
			opts:    map[string]string{"access": "private"},
			wantErr: ErrUnknownAccess,
		},
		{
			name:    "unknown option",
			opts:    map[string]string{"omitempty": ""},
			wantErr: ErrUnknownOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOptions: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		strategy schema.Strategy
		want     Generator
		wantErr  bool
	}{
		{strategy: schema.Strategy{Container: schema.Keyed}, want: keyedGenerator{}},
		{strategy: schema.Strategy{Container: schema.SingleValue, Binding: "ID"}, want: singleValueGenerator{binding: "ID"}},
		{strategy: schema.Strategy{Container: schema.SingleValueForEnum}, want: enumGenerator{}},
		{strategy: schema.Strategy{Container: schema.SingleValue}, wantErr: true},
		{strategy: schema.Strategy{Container: schema.Container(7)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			got, err := Select(tt.strategy)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownContainer) {
					t.Fatalf("expected ErrUnknownContainer, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
