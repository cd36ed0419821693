package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a catalog.
type Definition struct {
	Name        string            `yaml:"name"`
	Title       string            `yaml:"title"`
	Kicker      string            `yaml:"kicker,omitempty"`
	Description string            `yaml:"description,omitempty"`
	VisibleAt   float64           `yaml:"visible_at,omitempty"`
	FinalHold   string            `yaml:"final_hold,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Summary     []string          `yaml:"summary,omitempty"`
	Input       *InputDefinition  `yaml:"input,omitempty"`
	Stages      []StageDefinition `yaml:"stages"`
}

// InputDefinition is the on-disk form of an editable input.
type InputDefinition struct {
	Label   string `yaml:"label,omitempty"`
	Default string `yaml:"default"`
}

// StageDefinition is the on-disk form of a stage.
type StageDefinition struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Duration    string   `yaml:"duration,omitempty"`
	Body        []string `yaml:"body,omitempty"`
}

// New validates def and builds an immutable Catalog from it.
func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		name:        strings.TrimSpace(def.Name),
		title:       strings.TrimSpace(def.Title),
		kicker:      strings.TrimSpace(def.Kicker),
		description: strings.TrimSpace(def.Description),
		visibleAt:   def.VisibleAt,
	}
	if c.name == "" {
		return nil, fmt.Errorf("catalog name is required")
	}
	if c.title == "" {
		c.title = c.name
	}

	if c.visibleAt == 0 {
		c.visibleAt = DefaultVisibleAt
	}
	if !(c.visibleAt > 0 && c.visibleAt <= 1) {
		return nil, fmt.Errorf("visible_at must be within (0, 1], got %v", def.VisibleAt)
	}

	switch hold := FinalHold(strings.ToLower(strings.TrimSpace(def.FinalHold))); hold {
	case "":
		c.finalHold = FinalHoldDwell
	case FinalHoldDwell, FinalHoldNone:
		c.finalHold = hold
	default:
		return nil, fmt.Errorf("unknown final_hold %q", def.FinalHold)
	}

	for _, tag := range def.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			c.tags = append(c.tags, tag)
		}
	}
	for _, step := range def.Summary {
		if step = strings.TrimSpace(step); step != "" {
			c.summary = append(c.summary, step)
		}
	}

	if def.Input != nil {
		in := &Input{
			Label:   strings.TrimSpace(def.Input.Label),
			Default: strings.Join(strings.Fields(def.Input.Default), " "),
		}
		if in.Default == "" {
			return nil, fmt.Errorf("input default text is required")
		}
		if n := utf8.RuneCountInString(in.Default); n > MaxInputRunes {
			return nil, fmt.Errorf("input default text is %d characters, limit is %d", n, MaxInputRunes)
		}
		if in.Label == "" {
			in.Label = "Input text"
		}
		c.input = in
	}

	if len(def.Stages) == 0 {
		return nil, fmt.Errorf("catalog stages are required")
	}

	c.stages = make([]Stage, 0, len(def.Stages))
	last := len(def.Stages) - 1
	for i, sd := range def.Stages {
		stage, err := normalizeStage(sd, i, i == last)
		if err != nil {
			return nil, fmt.Errorf("catalog stage %d: %w", i+1, err)
		}
		c.stages = append(c.stages, stage)
	}

	return c, nil
}

func normalizeStage(def StageDefinition, index int, final bool) (Stage, error) {
	stage := Stage{
		Index:       index,
		Title:       strings.TrimSpace(def.Title),
		Description: strings.TrimSpace(def.Description),
	}
	if stage.Title == "" {
		return Stage{}, fmt.Errorf("stage title is required")
	}

	raw := strings.TrimSpace(def.Duration)
	switch {
	case raw == "" && final:
	case raw == "":
		return Stage{}, fmt.Errorf("stage duration is required")
	default:
		duration, err := time.ParseDuration(raw)
		if err != nil {
			return Stage{}, fmt.Errorf("invalid stage duration: %w", err)
		}
		if duration < 0 || (duration == 0 && !final) {
			return Stage{}, fmt.Errorf("stage duration must be greater than 0")
		}
		stage.Duration = duration
	}

	for _, line := range def.Body {
		stage.Body = append(stage.Body, strings.TrimRight(line, " \t"))
	}
	return stage, nil
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return New(def)
}

// LoadCatalog reads a single catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// LoadCatalogsFromDir loads all catalogs from a directory.
func LoadCatalogsFromDir(dir string) ([]*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Catalog{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Catalog{}, nil
		}
		return nil, fmt.Errorf("read catalogs dir %s: %w", dir, err)
	}

	catalogs := make([]*Catalog, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		c, err := LoadCatalog(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, c)
	}

	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].name < catalogs[j].name
	})

	return catalogs, nil
}
