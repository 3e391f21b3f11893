package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/vgfx/forge/internal/core/domain"
	"github.com/vgfx/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing for tasks and files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, zerr.With(zerr.Wrap(domain.ErrMissingInput, ""), "path", path)
		}
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash representing the task definition,
// the configuration salt, and the input file contents. Inputs are already
// canonicalized by the graph, so the digest is deterministic.
func (h *Hasher) ComputeInputHash(task *domain.Task, salt []string) (string, error) {
	hasher := xxhash.New()

	hashTaskDefinition(task, hasher)

	for _, s := range salt {
		_, _ = hasher.WriteString(s)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, input := range task.Inputs {
		path := input.String()
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0})

		content, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, content); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashTaskDefinition hashes the task's name, kind, source, output, and inputs.
func hashTaskDefinition(task *domain.Task, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(task.Name.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(task.Kind.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(task.Source.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(task.Output.String())
	_, _ = hasher.Write([]byte{0})

	for _, input := range task.Inputs {
		_, _ = hasher.WriteString(input.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
