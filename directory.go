package directory

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/dangerclosesec/directory/internal/model"
)

// EmailFS holds the email templates rendered by the email service.
//
//go:embed templates/emails
var EmailFS embed.FS

//go:embed seed/*.json
var seedFS embed.FS

// Seed is the initial content of the record store.
type Seed struct {
	Branches []model.Branch
	Skills   []model.Skill
	Teachers []model.Teacher
}

// LoadSeed decodes the embedded seed records.
func LoadSeed() (*Seed, error) {
	seed := &Seed{}

	if err := readSeed("seed/branches.json", &seed.Branches); err != nil {
		return nil, err
	}
	if err := readSeed("seed/skills.json", &seed.Skills); err != nil {
		return nil, err
	}
	if err := readSeed("seed/teachers.json", &seed.Teachers); err != nil {
		return nil, err
	}

	return seed, nil
}

func readSeed(path string, out any) error {
	data, err := seedFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
