package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile declares the shape of a seeded mesh. Profiles are loaded from
// YAML so dev and CI can share checked-in presets.
type Profile struct {
	Users           int     `yaml:"users"`
	PostsPerUser    int     `yaml:"posts_per_user"`
	DraftRatio      float64 `yaml:"draft_ratio"`
	FollowsPerUser  int     `yaml:"follows_per_user"`
	Blocks          int     `yaml:"blocks"`
	LikesPerUser    int     `yaml:"likes_per_user"`
	CommentsPerUser int     `yaml:"comments_per_user"`
	Reports         int     `yaml:"reports"`
	TakedownRatio   float64 `yaml:"takedown_ratio"`
	Clean           bool    `yaml:"clean"`
}

// DefaultProfile is a small mesh suitable for local development.
func DefaultProfile() Profile {
	return Profile{
		Users:           25,
		PostsPerUser:    4,
		DraftRatio:      0.15,
		FollowsPerUser:  5,
		Blocks:          6,
		LikesPerUser:    10,
		CommentsPerUser: 6,
		Reports:         8,
		TakedownRatio:   0.25,
		Clean:           true,
	}
}

// LoadProfile reads a YAML profile from disk. Missing fields fall back
// to the default profile's values.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parse seed profile: %w", err)
	}

	if err := profile.validate(); err != nil {
		return profile, err
	}
	return profile, nil
}

func (p Profile) validate() error {
	if p.Users < 2 {
		return fmt.Errorf("seed profile needs at least 2 users, got %d", p.Users)
	}
	if p.DraftRatio < 0 || p.DraftRatio > 1 {
		return fmt.Errorf("draft_ratio must be in [0, 1], got %v", p.DraftRatio)
	}
	if p.TakedownRatio < 0 || p.TakedownRatio > 1 {
		return fmt.Errorf("takedown_ratio must be in [0, 1], got %v", p.TakedownRatio)
	}
	return nil
}
