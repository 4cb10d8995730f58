package stencil

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HeaderFileName is the name the design sources #include.
const HeaderFileName = "gen_classes.h"

// Generate renders decls in order and concatenates them.
// Every rendered declaration ends in a blank line, so the result does too.
// Nothing is de-duplicated and references are not checked.
func Generate(decls []Decl, rev Revision) string {
	var b strings.Builder
	for _, d := range decls {
		b.WriteString(Render(d, rev))
	}
	return b.String()
}

// WriteHeader renders decls and writes them to path, creating its directory.
func WriteHeader(path string, decls []Decl, rev Revision) (string, error) {
	artifact := Generate(decls, rev)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create header directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return artifact, nil
}

// Digest returns the hex BLAKE2b-256 sum of an artifact.
func Digest(artifact string) string {
	sum := blake2b.Sum256([]byte(artifact))
	return hex.EncodeToString(sum[:])
}

// CheckHeader reports whether the file at path holds exactly the artifact
// that decls would render to, along with the digest of what is on disk.
func CheckHeader(path string, decls []Decl, rev Revision) (bool, string, error) {
	onDisk, err := os.ReadFile(path)
	if err != nil {
		return false, "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(onDisk) == Generate(decls, rev), Digest(string(onDisk)), nil
}
