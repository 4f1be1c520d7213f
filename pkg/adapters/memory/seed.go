package memory

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notekeeper/pkg/core"
)

//go:embed seed.yaml
var defaultSeed []byte

// seedNote is the on-disk shape of a note. CreatedAt stays a string so that
// both plain and quoted timestamps decode the same way.
type seedNote struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	CreatedAt string `yaml:"createdAt"`
	Archived  bool   `yaml:"archived"`
}

// DefaultSeed returns the notes bundled with the binary.
func DefaultSeed() []core.Note {
	notes, err := LoadSeed(bytes.NewReader(defaultSeed))
	if err != nil {
		panic(fmt.Sprintf("memory: embedded seed is invalid: %v", err))
	}
	return notes
}

// LoadSeed decodes a YAML sequence of notes.
// Notes without an id get a fresh one. An empty document yields no notes.
func LoadSeed(r io.Reader) ([]core.Note, error) {
	var raw []seedNote
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []core.Note{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	notes := make([]core.Note, 0, len(raw))
	for i, s := range raw {
		n, err := s.toNote()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		notes = append(notes, n)
	}
	if err := checkUnique(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// LoadSeedFiles loads every file matching pattern, which may use "**".
// Files are read in lexical order and their notes concatenated. A pattern
// matching nothing yields no notes.
func LoadSeedFiles(pattern string) ([]core.Note, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad seed pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)

	var notes []core.Note
	for _, path := range paths {
		batch, err := loadSeedFile(path)
		if err != nil {
			return nil, err
		}
		notes = append(notes, batch...)
	}
	if err := checkUnique(notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

func loadSeedFile(path string) ([]core.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	notes, err := LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return notes, nil
}

func (s seedNote) toNote() (core.Note, error) {
	n := core.Note{
		ID:       strings.TrimSpace(s.ID),
		Title:    s.Title,
		Body:     s.Body,
		Archived: s.Archived,
	}
	if n.ID == "" {
		id, err := core.NewID()
		if err != nil {
			return core.Note{}, err
		}
		n.ID = id
	}
	if s.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
		if err != nil {
			return core.Note{}, fmt.Errorf("createdAt: %w", err)
		}
		n.CreatedAt = t
	}
	return n, nil
}
