package info

import "fmt"

const (
	// BlockKey wraps a nested list of tasks
	BlockKey = "block"
	// IncludeTasksKey is the fully qualified include directive
	IncludeTasksKey = "ansible.builtin.include_tasks"
	// ShortIncludeTasksKey is the short include directive
	ShortIncludeTasksKey = "include_tasks"

	fileKey = "file"
)

// BlockSections lists the task list sections of a block, in scan order
var BlockSections = []string{BlockKey, "rescue", "always"}

// TaskFile represents a parsed task file
type TaskFile struct {
	Location string
	Tasks    []Task
}

// Task is a single task record; absent keys are simply not present
type Task map[string]interface{}

// Has returns true if the task declares key
func (t Task) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// IsBlock returns true for a block wrapper
func (t Task) IsBlock() bool {
	return t.Has(BlockKey)
}

// Block returns the tasks nested in the block, rescue and always sections
func (t Task) Block() ([]Task, error) {
	var result []Task
	for _, section := range BlockSections {
		value, ok := t[section]
		if !ok || value == nil {
			continue
		}
		tasks, err := AsTasks(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", section, err)
		}
		result = append(result, tasks...)
	}
	return result, nil
}

// Include returns the include target of the first matching key. The directive
// value is either a file name or a mapping with a file key.
func (t Task) Include(keys ...string) (string, bool, error) {
	for _, key := range keys {
		value, ok := t[key]
		if !ok {
			continue
		}
		switch actual := value.(type) {
		case string:
			return actual, true, nil
		case map[string]interface{}:
			if file, ok := actual[fileKey].(string); ok {
				return file, true, nil
			}
		}
		return "", true, fmt.Errorf("unsupported %s value: %v", key, value)
	}
	return "", false, nil
}

// AsTasks converts a decoded YAML sequence into tasks
func AsTasks(value interface{}) ([]Task, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of tasks, got %T", value)
	}
	tasks := make([]Task, 0, len(items))
	for i, item := range items {
		switch actual := item.(type) {
		case map[string]interface{}:
			tasks = append(tasks, Task(actual))
		case Task:
			tasks = append(tasks, actual)
		default:
			return nil, fmt.Errorf("task[%d]: expected a mapping, got %T", i, item)
		}
	}
	return tasks, nil
}
