// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Site is the public profile of the podcast shown on every page.
type Site struct {
	Podcast Podcast           `json:"podcast"`
	Social  map[string]string `json:"social_links"`
	Contact Contact           `json:"contact_info"`
	Hosts   []Host            `json:"hosts"`
}

// Podcast describes the show itself.
type Podcast struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Host        string   `json:"host"`
	CoverImage  string   `json:"cover_image"`
	Categories  []string `json:"categories"`
	Language    string   `json:"language"`
}

// Contact holds the public contact details.
type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Phone2  string `json:"phone2"`
	Address string `json:"address"`
}

// Host is one person on the /host page.
type Host struct {
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Bio         string            `json:"bio"`
	Image       string            `json:"image"`
	SocialMedia map[string]string `json:"social_media"`
}

// DefaultSite returns the built-in site profile.
func DefaultSite() Site {
	return Site{
		Podcast: Podcast{
			Title:       "Micro Podcast",
			Description: "Discover powerful stories and insights through our thought-provoking podcast series.",
			Host:        "John Doe",
			CoverImage:  "/static/img/placeholder.svg",
			Categories:  []string{"Technology", "Programming", "Innovation"},
			Language:    "en-US",
		},
		Social: map[string]string{
			"twitter":        "#",
			"facebook":       "#",
			"instagram":      "#",
			"youtube":        "#",
			"spotify":        "#",
			"apple_podcasts": "#",
			"soundcloud":     "#",
		},
		Contact: Contact{
			Email:   "contact@example.com",
			Phone:   "+1 (555) 123-4567",
			Phone2:  "+1 (555) 987-6543",
			Address: "123 Podcast Street, City, State 12345",
		},
		Hosts: []Host{
			{
				Name:  "John Doe",
				Role:  "Main Host",
				Bio:   "Experienced podcast host with a passion for storytelling.",
				Image: "/static/img/placeholder.svg",
				SocialMedia: map[string]string{
					"twitter":   "#",
					"instagram": "#",
					"linkedin":  "#",
				},
			},
		},
	}
}

// LoadSite returns the default profile, overlaid with the JSON file at path
// when path is not empty. Fields missing from the file keep their defaults.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return site, fmt.Errorf("reading site file: %w", err)
	}
	if err := json.Unmarshal(data, &site); err != nil {
		return site, fmt.Errorf("parsing site file: %w", err)
	}
	return site, nil
}
