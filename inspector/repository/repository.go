package repository

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (javascript, go, git)
	Name         string // Name of the project (extracted from config files)
	RelativePath string // Path from project root to the specified file
}
