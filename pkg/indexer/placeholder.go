package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// CredentialsFileName is the per-collection file the poster reads its
// login from
const CredentialsFileName = "credentials"

const credentialsPlaceholder = "COPOSTR_EMAIL=''\nCOPOSTR_PASSWORD=''\nCOPOSTR_PROJECT=''\n"

const credentialsPerms = 0o600

// WriteCredentialsPlaceholder creates an empty credentials file in dir. An
// existing file is never touched. It reports whether a file was written.
func WriteCredentialsPlaceholder(dir string) (bool, error) {
	path := filepath.Join(dir, CredentialsFileName)

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat credentials file: %w", err)
	}

	if err := atomic.WriteFile(path, strings.NewReader(credentialsPlaceholder)); err != nil {
		return false, fmt.Errorf("write credentials file: %w", err)
	}

	if err := os.Chmod(path, credentialsPerms); err != nil {
		return false, fmt.Errorf("set credentials file permissions: %w", err)
	}

	return true, nil
}
