package repository

// Project represents information about a detected automation project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // ansible, git or unknown
	Name         string // Name of the project (git origin or directory name)
	RelativePath string // Path from project root to the specified file
	RolesDir     string // Roles directory under the root, empty when absent
	Origin       string // Git origin URL, if any
}
