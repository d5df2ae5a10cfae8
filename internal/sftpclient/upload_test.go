package sftpclient

import (
	"context"
	"strings"
	"testing"
)

func TestUploadFilesMissingConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"no host", Config{User: "u", Pass: "p"}},
		{"no user", Config{Host: "h", Pass: "p"}},
		{"no pass", Config{Host: "h", User: "u"}},
	}

	for _, tc := range testCases {
		err := UploadFiles(context.Background(), tc.cfg, []string{"report.csv"})
		if err == nil {
			t.Errorf("%s: UploadFiles() returned nil error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), "sftp: missing") {
			t.Errorf("%s: error = %v", tc.name, err)
		}
	}
}

func TestUploadFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Host: "203.0.113.1", Port: 22, User: "u", Pass: "p"}
	err := UploadFiles(ctx, cfg, []string{"report.csv"})
	if err == nil {
		t.Fatal("UploadFiles() with canceled context returned nil error")
	}
}
