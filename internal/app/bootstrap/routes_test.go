package bootstrap

import (
	"path/filepath"
	"testing"
)

func TestS3Config_BlankKeysUseDefaultChain(t *testing.T) {
	cfg := s3Config(AppConfig{
		StorageS3Bucket: "bucket",
		StorageS3Region: "us-east-2",
		StorageS3Prefix: "groups",
	})
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		t.Errorf("expected no static credentials, got key %q", cfg.AccessKeyID)
	}
	if cfg.UsePathStyle {
		t.Error("path style should only be set for a custom endpoint")
	}
	if cfg.Bucket != "bucket" || cfg.Region != "us-east-2" || cfg.Prefix != "groups" {
		t.Errorf("unexpected mapping: %+v", cfg)
	}
}

func TestS3Config_EndpointSelectsPathStyle(t *testing.T) {
	cfg := s3Config(AppConfig{
		StorageS3Bucket:   "bucket",
		StorageS3Endpoint: "http://127.0.0.1:9000",
		StorageS3KeyID:    "minio",
		StorageS3Secret:   "minio-secret",
	})
	if !cfg.UsePathStyle {
		t.Error("custom endpoint should use path-style addressing")
	}
	if cfg.AccessKeyID != "minio" || cfg.SecretAccessKey != "minio-secret" {
		t.Errorf("static credentials not mapped: %+v", cfg)
	}
}

func TestNewFileBackend_S3WithoutKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "from-env")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "from-env-secret")

	backend, err := newFileBackend(AppConfig{
		StorageType:     "s3",
		StorageS3Bucket: "bucket",
		StorageS3Region: "us-east-1",
	})
	if err != nil {
		t.Fatalf("newFileBackend: %v", err)
	}
	if backend.Backend() != "s3" {
		t.Errorf("backend = %q, want s3", backend.Backend())
	}
}

func TestNewFileBackend_Local(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads", "groups")
	backend, err := newFileBackend(AppConfig{StorageType: "local", StorageLocalPath: root})
	if err != nil {
		t.Fatalf("newFileBackend: %v", err)
	}
	if backend.Backend() != "local" {
		t.Errorf("backend = %q, want local", backend.Backend())
	}
}
