package repository

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const rolesDir = "roles"

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Project root marker files/directories, in precedence order
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"ansible.cfg", // Ansible configuration
			rolesDir,      // Conventional roles directory
			".git",        // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given playbook or directory
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info := &Project{Type: "unknown", RootPath: startDir}
	if rootPath, projectType := d.findProjectRoot(startDir); rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	if relPath, err := filepath.Rel(info.RootPath, absPath); err == nil {
		info.RelativePath = filepath.ToSlash(relPath)
	} else {
		info.RelativePath = filepath.Base(absPath)
	}
	if isDir(filepath.Join(info.RootPath, rolesDir)) {
		info.RolesDir = filepath.Join(info.RootPath, rolesDir)
	}
	info.Origin = extractGitOrigin(info.RootPath)
	info.Name = projectName(info.RootPath, info.Origin)
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if marker == rolesDir {
				if isDir(markerPath) {
					return dir, determineProjectType(marker)
				}
				continue
			}
			if _, err := os.Stat(markerPath); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(root string) string {
	file, err := os.Open(filepath.Join(root, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if !foundRemote {
			continue
		}
		if name, value, ok := strings.Cut(line, "="); ok && strings.TrimSpace(name) == "url" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// projectName takes the repository name from origin, falling back to the directory name
func projectName(root, origin string) string {
	if origin != "" {
		origin = strings.TrimSuffix(strings.TrimSuffix(origin, "/"), ".git")
		if idx := strings.LastIndexAny(origin, "/:"); idx != -1 && idx+1 < len(origin) {
			return origin[idx+1:]
		}
	}
	return filepath.Base(root)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "ansible.cfg", rolesDir:
		return "ansible"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}

func isDir(location string) bool {
	info, err := os.Stat(location)
	return err == nil && info.IsDir()
}
