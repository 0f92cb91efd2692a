// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package i18n provides the localizer of the dashboard and the languages it has catalogues for.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

const catalogueExt = ".po"

//go:embed locale/*
var locales embed.FS

// Languages returns the languages the dashboard can be shown in. English is the source language
// and is always listed first.
func Languages() []language.Tag {
	tags := []language.Tag{language.English}
	entries, err := fs.ReadDir(locales, "locale")
	if err != nil {
		return tags
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != catalogueExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), catalogueExt))
	}
	sort.Strings(names)
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil || tag == language.English {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Resolve returns the catalogue language for loc. An empty loc is detected from the
// environment. If no catalogue matches, English is returned and ok is false.
func Resolve(loc string) (tag language.Tag, ok bool) {
	requested := language.Make(loc)
	if loc == "" {
		detected, err := locale.Detect()
		if err != nil {
			return language.English, false
		}
		requested = detected
	}

	supported := Languages()
	_, idx, confidence := language.NewMatcher(supported).Match(requested)
	if confidence == language.No {
		return language.English, false
	}
	return supported[idx], true
}

// New returns a localizer for the catalogue matching loc. Messages without a translation, and
// locales without a catalogue, fall back to English.
func New(loc string) (*spreak.Localizer, error) {
	tag, _ := Resolve(loc)

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}
