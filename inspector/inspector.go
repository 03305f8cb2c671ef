package inspector

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/playgraph/inspector/info"
	"gopkg.in/yaml.v3"
)

var (
	// ErrParse is returned when a document is not a valid playbook or task file
	ErrParse = errors.New("parse failure")

	// ErrNotFound is returned when a referenced file or directory does not exist
	ErrNotFound = errors.New("not found")
)

// Inspector loads playbooks and task files
type Inspector struct {
	fs afs.Service
}

// New creates an inspector reading through fs, a nil fs uses afs.New()
func New(fs afs.Service) *Inspector {
	if fs == nil {
		fs = afs.New()
	}
	return &Inspector{fs: fs}
}

// InspectPlaybook loads and parses a playbook
func (i *Inspector) InspectPlaybook(ctx context.Context, location string) (*info.Playbook, error) {
	src, err := i.download(ctx, location)
	if err != nil {
		return nil, err
	}
	return InspectPlaybookSource(location, src)
}

// InspectTaskFile loads and parses a task file
func (i *Inspector) InspectTaskFile(ctx context.Context, location string) (*info.TaskFile, error) {
	src, err := i.download(ctx, location)
	if err != nil {
		return nil, err
	}
	return InspectTaskSource(location, src)
}

// InspectPlaybookSource parses playbook source
func InspectPlaybookSource(location string, src []byte) (*info.Playbook, error) {
	var plays []*info.Play
	if err := yaml.Unmarshal(src, &plays); err != nil {
		return nil, fmt.Errorf("playbook %s: %w: %v", location, ErrParse, err)
	}
	result := &info.Playbook{Location: location}
	for _, play := range plays {
		if play == nil {
			play = &info.Play{}
		}
		result.Plays = append(result.Plays, play)
	}
	return result, nil
}

// InspectTaskSource parses task file source
func InspectTaskSource(location string, src []byte) (*info.TaskFile, error) {
	var raw interface{}
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("task file %s: %w: %v", location, ErrParse, err)
	}
	result := &info.TaskFile{Location: location}
	if raw == nil {
		return result, nil
	}
	tasks, err := info.AsTasks(raw)
	if err != nil {
		return nil, fmt.Errorf("task file %s: %w: %v", location, ErrParse, err)
	}
	result.Tasks = tasks
	return result, nil
}

func (i *Inspector) download(ctx context.Context, location string) ([]byte, error) {
	exists, err := i.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	src, err := i.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return src, nil
}
