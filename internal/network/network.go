// Package network lists the sibling projects linked from the dev lab page.
package network

import (
	"strings"

	"github.com/elliot-ia/elliot/internal/config"
)

type Project struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Projects is the configured project list, in configuration order.
type Projects []Project

func FromConfig(cfg config.NetworkConfig) Projects {
	projects := make(Projects, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		projects = append(projects, Project{
			Name:        p.Name,
			URL:         p.URL,
			Description: p.Description,
		})
	}
	return projects
}

// Find looks a project up by name, ignoring case.
func (ps Projects) Find(name string) (Project, bool) {
	name = strings.TrimSpace(name)
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Project{}, false
}
