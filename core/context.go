package core

// ProjectInfo is optional project metadata attached to a run.
type ProjectInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FileSnapshot is a project file captured at request time.
type FileSnapshot struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// EditorSnapshot is the editor buffer captured at request time.
type EditorSnapshot struct {
	Path     string `json:"path,omitempty"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// AIContext is the request-scoped context assembled fresh for every run:
// recent history and the full preference set come from the persistence
// gateway, the rest is supplied by the caller. It is never cached across
// requests.
type AIContext struct {
	History     []ChatMessage   `json:"history,omitempty"`
	Preferences []Preference    `json:"preferences,omitempty"`
	Project     *ProjectInfo    `json:"project,omitempty"`
	Files       []FileSnapshot  `json:"files,omitempty"`
	Editor      *EditorSnapshot `json:"editor,omitempty"`
}

// Merge overlays caller-supplied fields onto a gateway-built context. History
// and preferences always come from the gateway side (the receiver); project,
// files and editor are taken from other when present.
func (c *AIContext) Merge(other *AIContext) {
	if other == nil {
		return
	}
	if other.Project != nil {
		c.Project = other.Project
	}
	if len(other.Files) > 0 {
		c.Files = other.Files
	}
	if other.Editor != nil {
		c.Editor = other.Editor
	}
}
