package config

import (
	"os"
	"reflect"
	"testing"
)

func TestGetenv(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV")
	result := getenv("TEST_GETENV", "default")
	if result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	// Test with set environment variable
	os.Setenv("TEST_GETENV", "test-value")
	result = getenv("TEST_GETENV", "default")
	if result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV")
}

func TestGetenvInt(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV_INT")
	result := getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	// Test with valid integer
	os.Setenv("TEST_GETENV_INT", "100")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	// Test with invalid integer
	os.Setenv("TEST_GETENV_INT", "not-an-int")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV_INT")
}

func TestGetenvFloat(t *testing.T) {
	os.Unsetenv("TEST_GETENV_FLOAT")
	result := getenvFloat("TEST_GETENV_FLOAT", 0.01)
	if result != 0.01 {
		t.Errorf("Expected default value 0.01, got %f", result)
	}

	os.Setenv("TEST_GETENV_FLOAT", "2.50")
	result = getenvFloat("TEST_GETENV_FLOAT", 0.01)
	if result != 2.5 {
		t.Errorf("Expected 2.5, got %f", result)
	}

	os.Setenv("TEST_GETENV_FLOAT", "not-a-float")
	result = getenvFloat("TEST_GETENV_FLOAT", 0.01)
	if result != 0.01 {
		t.Errorf("Expected default value 0.01, got %f", result)
	}

	os.Unsetenv("TEST_GETENV_FLOAT")
}

func TestGetenvList(t *testing.T) {
	os.Unsetenv("TEST_GETENV_LIST")
	if result := getenvList("TEST_GETENV_LIST"); result != nil {
		t.Errorf("Expected nil for unset variable, got %v", result)
	}

	os.Setenv("TEST_GETENV_LIST", "a@example.com, b@example.com,,  ")
	result := getenvList("TEST_GETENV_LIST")
	expected := []string{"a@example.com", "b@example.com"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	os.Unsetenv("TEST_GETENV_LIST")
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SHOPIFY_API_VERSION", "FETCH_LIMIT", "MIN_IMAGES", "MIN_DESCRIPTION_LENGTH", "MIN_PRICE", "OUTPUT_DIR", "SFTP_PORT"} {
		os.Unsetenv(k)
	}

	cfg := Load()
	if cfg.APIVersion != "2025-01" {
		t.Errorf("APIVersion default = %q", cfg.APIVersion)
	}
	if cfg.FetchLimit != 20000 {
		t.Errorf("FetchLimit default = %d", cfg.FetchLimit)
	}
	if cfg.MinImages != 1 || cfg.MinDescriptionLength != 100 || cfg.MinPrice != 0.01 {
		t.Errorf("validation defaults = %d/%d/%f", cfg.MinImages, cfg.MinDescriptionLength, cfg.MinPrice)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("SFTPPort default = %d", cfg.SFTPPort)
	}
}
