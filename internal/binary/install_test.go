package binary

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/RobinBoers/tailwind/internal/testutil"
)

func TestInstallWritesExecutable(t *testing.T) {
	testutil.ClearProxyEnv(t)

	payload := []byte("#!/bin/sh\necho tailwindcss\n")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "_build", "tailwindcss-linux-x64-4.0.9")
	installer := NewInstaller(NewFetcher(testLogger()), nil, testLogger())

	if err := installer.Install(context.Background(), server.URL, "", dest); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("installed binary does not match downloaded body")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dest)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Errorf("installed binary is not executable: mode %v", info.Mode())
		}
	}

	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after install")
	}
}

func TestInstallReplacesExisting(t *testing.T) {
	testutil.ClearProxyEnv(t)

	payload := []byte("new binary contents")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "tailwindcss-linux-x64-4.0.9")
	if err := os.WriteFile(dest, []byte("old binary contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	installer := NewInstaller(NewFetcher(testLogger()), nil, testLogger())
	if err := installer.Install(context.Background(), server.URL, "", dest); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("existing file was not replaced with new body")
	}
}

func TestInstallChecksumMismatchAborts(t *testing.T) {
	testutil.ClearProxyEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tampered contents"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "tailwindcss-linux-x64-4.0.9")
	verifier := &Verifier{Checksum: hexDigest([]byte("expected contents"))}
	installer := NewInstaller(NewFetcher(testLogger()), verifier, testLogger())

	if err := installer.Install(context.Background(), server.URL, "", dest); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("mismatched binary must not be written to the destination")
	}
}

func TestInstallChecksumMatch(t *testing.T) {
	testutil.ClearProxyEnv(t)

	payload := []byte("pinned contents")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "tailwindcss-linux-x64-4.0.9")
	verifier := &Verifier{Checksum: hexDigest(payload)}
	installer := NewInstaller(NewFetcher(testLogger()), verifier, testLogger())

	if err := installer.Install(context.Background(), server.URL, "", dest); err != nil {
		t.Fatalf("Install() with matching checksum failed: %v", err)
	}
}

func hexDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
