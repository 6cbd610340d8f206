package words

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// Difficulty selects which word-pair tier a session draws from
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty string
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// Easier returns the fallback tier for a failed load. Every non-easy tier
// falls back to easy; easy has nowhere left to go.
func (d Difficulty) Easier() (Difficulty, bool) {
	if d == DifficultyEasy {
		return "", false
	}
	return DifficultyEasy, true
}

// Pair is one round's word assignment: Word goes to the majority,
// ImposterWord to the imposter. The two are always distinct in curated data.
type Pair struct {
	Word         string `json:"word"`
	ImposterWord string `json:"imposterWord"`
}

// EmergencyPair is the hardcoded availability fallback used when every tier
// fails to load, so a round can still proceed.
var EmergencyPair = Pair{Word: "Emergency", ImposterWord: "Fallback"}

// Source provides word pairs for a difficulty tier. May fail; callers are
// expected to fall back through tiers.
type Source interface {
	Pairs(d Difficulty) ([]Pair, error)
}

// DirSource reads word pairs from <difficulty>Words.json files in a
// directory. File format: {"wordPairs": [["Apple","Orange"], ...]}.
type DirSource struct {
	dir string
}

// NewDirSource creates a source backed by the given directory
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

type wordFile struct {
	WordPairs [][]string `json:"wordPairs"`
}

// Pairs loads the tier's word file
func (s *DirSource) Pairs(d Difficulty) ([]Pair, error) {
	path := filepath.Join(s.dir, string(d)+"Words.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file wordFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	pairs := make([]Pair, 0, len(file.WordPairs))
	for _, wp := range file.WordPairs {
		if len(wp) < 2 || wp[0] == "" || wp[1] == "" {
			continue
		}
		pairs = append(pairs, Pair{Word: wp[0], ImposterWord: wp[1]})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no usable word pairs in %s", path)
	}
	return pairs, nil
}

// Static is a fixed in-memory source, used in tests
type Static []Pair

// Pairs returns the static list regardless of difficulty
func (s Static) Pairs(Difficulty) ([]Pair, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("static source is empty")
	}
	return []Pair(s), nil
}

// Failing is a source that always errors, used in tests
type Failing struct{}

// Pairs always fails
func (Failing) Pairs(Difficulty) ([]Pair, error) {
	return nil, fmt.Errorf("word source unavailable")
}

// Choose picks a random pair for the difficulty, walking down tiers on
// failure and ending at the emergency pair. A pair is always returned; the
// error reports the first failed tier so callers can log the degradation.
func Choose(src Source, d Difficulty) (Pair, error) {
	var firstErr error
	for {
		pairs, err := src.Pairs(d)
		if err == nil {
			return pairs[rand.Intn(len(pairs))], firstErr
		}
		if firstErr == nil {
			firstErr = err
		}
		easier, ok := d.Easier()
		if !ok {
			return EmergencyPair, firstErr
		}
		d = easier
	}
}
