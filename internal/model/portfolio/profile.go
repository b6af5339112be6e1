package portfolio

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Experience is a single entry of the work history.
type Experience struct {
	Company     string   `json:"company" yaml:"company"`
	Role        string   `json:"role" yaml:"role"`
	Period      string   `json:"period" yaml:"period"`
	Description []string `json:"description" yaml:"description"`
}

// SkillCategory groups related skills under a display name.
type SkillCategory struct {
	Name   string   `json:"name" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}

// Contact holds the public contact details of the profile owner.
type Contact struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
}

// Education is a single study entry.
type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Year        string `json:"year" yaml:"year"`
}

// ProfileData is the static read-only reference dataset. It is owned by
// configuration: nothing in the service layer ever mutates it. It doubles
// as the seed for the fallback store and as the knowledge context embedded
// into the chat persona instruction.
type ProfileData struct {
	Name       string          `json:"name" yaml:"name"`
	Role       string          `json:"role" yaml:"role"`
	Contact    Contact         `json:"contact" yaml:"contact"`
	Education  []Education     `json:"education" yaml:"education"`
	Experience []Experience    `json:"experience" yaml:"experience"`
	Projects   []Project       `json:"projects" yaml:"projects"`
	Skills     []SkillCategory `json:"skills" yaml:"skills"`
}

// VisitorBaseline is the counter value both stores start from.
const VisitorBaseline = 1025

//go:embed profile.yaml
var profileYAML []byte

// Seed parses the embedded profile dataset.
func Seed() (ProfileData, error) {
	var data ProfileData
	if err := yaml.Unmarshal(profileYAML, &data); err != nil {
		return ProfileData{}, fmt.Errorf("failed to parse embedded profile: %w", err)
	}
	return data, nil
}

// MustSeed is Seed for callers that treat a broken embedded profile as a
// programming error, such as package initialisation in main and tests.
func MustSeed() ProfileData {
	data, err := Seed()
	if err != nil {
		panic(err)
	}
	return data
}
