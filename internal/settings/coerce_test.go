package settings

import (
	"testing"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

func TestEncodeBooleanTruthiness(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"boolTrue", true, "true"},
		{"boolFalse", false, "false"},
		{"stringTrue", "true", "true"},
		{"numberOne", float64(1), "true"},
		{"numberZero", float64(0), "false"},
		{"emptyString", "", "false"},
		{"null", nil, "false"},
		// non-empty strings are truthy regardless of content
		{"stringFalse", "false", "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeValue(models.SettingTypeBoolean, tc.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || *got != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, got)
			}
		})
	}
}

func TestEncodeIntegerTruncates(t *testing.T) {
	got, err := EncodeValue(models.SettingTypeInteger, float64(3.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != "3" {
		t.Fatalf("expected truncated \"3\", got %q", *got)
	}

	got, err = EncodeValue(models.SettingTypeInteger, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != "42" {
		t.Fatalf("expected \"42\", got %q", *got)
	}

	if _, err := EncodeValue(models.SettingTypeInteger, "nope"); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestEncodeStringNullPassthrough(t *testing.T) {
	got, err := EncodeValue(models.SettingTypeString, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected null passthrough, got %q", *got)
	}

	got, err = EncodeValue(models.SettingTypeString, float64(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != "42" {
		t.Fatalf("expected \"42\", got %q", *got)
	}
}

func TestDecodeValueTyped(t *testing.T) {
	sTrue := "true"
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeBoolean, Value: &sTrue}); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeBoolean}); got != false {
		t.Fatalf("expected false for null boolean, got %v", got)
	}

	sNum := "17"
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeInteger, Value: &sNum}); got != int64(17) {
		t.Fatalf("expected 17, got %v", got)
	}
	sBad := "x"
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeInteger, Value: &sBad}); got != int64(0) {
		t.Fatalf("expected 0 for unparseable integer, got %v", got)
	}

	sText := "hello"
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeString, Value: &sText}); got != "hello" {
		t.Fatalf("expected string passthrough, got %v", got)
	}
	if got := DecodeValue(models.SiteSetting{ValueType: models.SettingTypeString}); got != nil {
		t.Fatalf("expected nil for null string, got %v", got)
	}
}
