// Package config reads the bot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingToken = errors.New("BOT_TOKEN is not set")

type Scope string

const (
	ScopeUser   Scope = "user"
	ScopeGlobal Scope = "global"
)

// Fallback images used when IMAGES is empty.
var DefaultImages = []string{
	"https://images.unsplash.com/photo-1500530855697-b586d89ba3ee",
	"https://images.unsplash.com/photo-1500534314209-a25ddb2bd429",
}

const DefaultRecentSize = 3

type Config struct {
	Token      string
	Images     []string
	PreviewURL string

	RecentSize  int
	RecentScope Scope

	FileIDMap string

	PinnedUsername string
	PinnedMedia    string
	OwnerID        int64

	LogLevel string
}

// LoadDotEnv loads .env files into the environment if they exist.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	return Load(os.Getenv)
}

func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Token:          strings.TrimSpace(getenv("BOT_TOKEN")),
		Images:         ParseImages(getenv("IMAGES")),
		PreviewURL:     strings.TrimSpace(getenv("PREVIEW_URL")),
		RecentSize:     DefaultRecentSize,
		RecentScope:    ScopeUser,
		FileIDMap:      strings.TrimSpace(getenv("FILE_ID_MAP")),
		PinnedUsername: strings.TrimPrefix(strings.TrimSpace(getenv("PINNED_USERNAME")), "@"),
		PinnedMedia:    strings.TrimSpace(getenv("PINNED_MEDIA")),
		LogLevel:       strings.TrimSpace(getenv("LOG_LEVEL")),
	}
	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}

	if len(cfg.Images) == 0 {
		cfg.Images = append([]string(nil), DefaultImages...)
	}
	if cfg.PreviewURL == "" {
		cfg.PreviewURL = cfg.Images[0]
	}

	if v := strings.TrimSpace(getenv("RECENT_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("RECENT_SIZE must be a positive integer, got %q", v)
		}
		cfg.RecentSize = n
	}

	if v := strings.ToLower(strings.TrimSpace(getenv("RECENT_SCOPE"))); v != "" {
		switch Scope(v) {
		case ScopeUser, ScopeGlobal:
			cfg.RecentScope = Scope(v)
		default:
			return Config{}, fmt.Errorf("RECENT_SCOPE must be %q or %q, got %q", ScopeUser, ScopeGlobal, v)
		}
	}

	if v := strings.TrimSpace(getenv("OWNER_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("OWNER_ID: %w", err)
		}
		cfg.OwnerID = id
	}

	return cfg, nil
}

// ParseImages splits a comma separated list, dropping blank entries.
func ParseImages(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
