package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"chorewheel/internal/models"
)

// InvalidDefinitionError names the task and invariant violated by a task
// file entry. The entry is excluded from the active set; loading continues.
type InvalidDefinitionError struct {
	Task   string
	Reason error
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid task definition %q: %v", e.Task, e.Reason)
}

func (e *InvalidDefinitionError) Unwrap() error { return e.Reason }

// taskFile is the on-disk shape of the human-editable task file.
type taskFile struct {
	Tasks []taskEntry `yaml:"tasks"`
}

type taskEntry struct {
	Name string `yaml:"name"`
	// Go duration strings, e.g. "168h" for a weekly chore.
	Every string `yaml:"every"`
	Lead  string `yaml:"lead,omitempty"`
	// Status is a display cache rewritten after commits. It is never read
	// back as truth; status is always recomputed from the completion log.
	Status models.Status `yaml:"status,omitempty"`
}

// LoadDefinitions reads the task file, validates each entry, and returns the
// active definitions in file order. Invalid entries are collected, not fatal:
// the caller logs them and the rest of the set stays usable.
func LoadDefinitions(path string) ([]models.TaskDefinition, []*InvalidDefinitionError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read task file: %w", err)
	}

	var file taskFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse task file: %w", err)
	}

	var defs []models.TaskDefinition
	var invalid []*InvalidDefinitionError
	seen := make(map[string]bool)

	for _, entry := range file.Tasks {
		def, err := entry.definition()
		if err != nil {
			invalid = append(invalid, &InvalidDefinitionError{Task: entry.Name, Reason: err})
			continue
		}
		if seen[def.Name] {
			invalid = append(invalid, &InvalidDefinitionError{
				Task:   def.Name,
				Reason: fmt.Errorf("duplicate task name"),
			})
			continue
		}
		seen[def.Name] = true
		defs = append(defs, def)
	}

	return defs, invalid, nil
}

func (e taskEntry) definition() (models.TaskDefinition, error) {
	every, err := time.ParseDuration(e.Every)
	if err != nil {
		return models.TaskDefinition{}, fmt.Errorf("parse recurrence period %q: %w", e.Every, err)
	}

	var lead time.Duration
	if e.Lead != "" {
		lead, err = time.ParseDuration(e.Lead)
		if err != nil {
			return models.TaskDefinition{}, fmt.Errorf("parse lead time %q: %w", e.Lead, err)
		}
	}

	def := models.TaskDefinition{Name: e.Name, Every: every, LeadTime: lead}
	if err := def.Validate(); err != nil {
		return models.TaskDefinition{}, err
	}
	return def, nil
}

// WriteStatusCache rewrites the task file with the current derived status per
// task. It stages the new content in a temp file and renames it into place,
// so readers never observe a partially written file. The cache is cosmetic;
// a crash before the rename leaves the previous file intact.
func WriteStatusCache(path string, defs []models.TaskDefinition, statuses map[string]models.Status) error {
	file := taskFile{Tasks: make([]taskEntry, 0, len(defs))}
	for _, def := range defs {
		entry := taskEntry{
			Name:   def.Name,
			Every:  def.Every.String(),
			Status: statuses[def.Name],
		}
		if def.LeadTime > 0 {
			entry.Lead = def.LeadTime.String()
		}
		file.Tasks = append(file.Tasks, entry)
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tasks-*.yaml")
	if err != nil {
		return fmt.Errorf("stage task file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write staged task file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync staged task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close staged task file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit task file: %w", err)
	}
	return nil
}
