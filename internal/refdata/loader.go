package refdata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names expected inside the reference-data directory. A missing file
// falls back to the corresponding built-in default section; a present but
// malformed file is a hard error.
const (
	GazetteerFile  = "gazetteer.yaml"
	CategoriesFile = "categories.yaml"
	SynonymsFile   = "synonyms.yaml"
	StopWordsFile  = "stopwords.yaml"
)

type gazetteerFile struct {
	HomePlace string       `yaml:"home_place"`
	Places    []PlaceEntry `yaml:"places"`
}

type categoriesFile struct {
	Keywords        []KeywordWeight `yaml:"keywords"`
	Phrases         []PhraseBoost   `yaml:"phrases"`
	RetentionWeight float64         `yaml:"retention_weight"`
}

type synonymsFile struct {
	Synonyms []SynonymGroup `yaml:"synonyms"`
}

type stopWordsFile struct {
	StopWords []string `yaml:"stop_words"`
}

// Load reads reference data from dir, falling back to built-in defaults for
// any file that does not exist. An empty dir returns the defaults unchanged.
func Load(dir string) (*Data, error) {
	d := DefaultData()
	if dir == "" {
		return d, nil
	}

	var gz gazetteerFile
	if ok, err := readYAML(filepath.Join(dir, GazetteerFile), &gz); err != nil {
		return nil, err
	} else if ok {
		d.HomePlace = gz.HomePlace
		d.Places = gz.Places
	}

	var cat categoriesFile
	if ok, err := readYAML(filepath.Join(dir, CategoriesFile), &cat); err != nil {
		return nil, err
	} else if ok {
		d.Keywords = cat.Keywords
		d.Phrases = cat.Phrases
		d.RetentionWeight = cat.RetentionWeight
	}

	var syn synonymsFile
	if ok, err := readYAML(filepath.Join(dir, SynonymsFile), &syn); err != nil {
		return nil, err
	} else if ok {
		d.Synonyms = syn.Synonyms
	}

	var sw stopWordsFile
	if ok, err := readYAML(filepath.Join(dir, StopWordsFile), &sw); err != nil {
		return nil, err
	} else if ok {
		d.StopWords = sw.StopWords
	}

	return d, nil
}

// LoadTables loads and validates reference data from dir.
func LoadTables(dir string) (*Tables, error) {
	d, err := Load(dir)
	if err != nil {
		return nil, err
	}
	t, err := Build(d)
	if err != nil {
		return nil, fmt.Errorf("invalid reference data in %s: %w", dir, err)
	}
	return t, nil
}

// readYAML reads path into out. Returns (false, nil) when the file does not exist.
func readYAML(path string, out interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}
