// Package domain defines the material registry types and ports
package domain

import "context"

// Material is the read-only record behind one task
type Material struct {
	TaskID           string `yaml:"task_id" json:"task_id"`
	Title            string `yaml:"title" json:"title,omitempty"`
	Description      string `yaml:"description" json:"description,omitempty"`
	DownloadURL      string `yaml:"download_url" json:"download_url"`
	DownloadFilename string `yaml:"download_filename" json:"filename"`
	CourseURL        string `yaml:"course_url" json:"course_url"`
}

// SourcePort loads every material once at start
type SourcePort interface {
	Load(ctx context.Context) ([]Material, error)
}

// LookupPort is the registry seen by the bot, the web app API and the grader
type LookupPort interface {
	Lookup(ctx context.Context, taskID string) (Material, error)
	List(ctx context.Context) ([]Material, error)
	// Default is the material shown when a deep link names no task
	Default(ctx context.Context) (Material, error)
}
