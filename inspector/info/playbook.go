package info

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"strconv"
)

// Playbook represents a parsed playbook document
type Playbook struct {
	Location string
	Plays    []*Play
}

// Play represents one entry of a playbook
type Play struct {
	Name  string    `yaml:"name,omitempty"`
	Roles []RoleRef `yaml:"roles,omitempty"`
	Vars  Scope     `yaml:"vars,omitempty"`
}

// DisplayName returns the play name or its position when unnamed
func (p *Play) DisplayName(index int) string {
	if p.Name != "" {
		return p.Name
	}
	return strconv.Itoa(index)
}

// Scope returns the play variables, never nil
func (p *Play) Scope() Scope {
	if p.Vars == nil {
		return Scope{}
	}
	return p.Vars
}

// RoleRef is a roles entry, either a bare name or a mapping with a role (or name) key
type RoleRef struct {
	Name string
}

// UnmarshalYAML decodes both role entry forms
func (r *RoleRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Name = node.Value
	case yaml.MappingNode:
		var entry struct {
			Role string `yaml:"role"`
			Name string `yaml:"name"`
		}
		if err := node.Decode(&entry); err != nil {
			return err
		}
		r.Name = entry.Role
		if r.Name == "" {
			r.Name = entry.Name
		}
	default:
		return fmt.Errorf("line %d: unsupported role entry", node.Line)
	}
	if r.Name == "" {
		return fmt.Errorf("line %d: role entry without a name", node.Line)
	}
	return nil
}
