package core

// RecordKind tags the variant of an auto-saved knowledge record.
type RecordKind string

const (
	// RecordDecision is a design or product decision.
	RecordDecision RecordKind = "decision"
	// RecordBug is a bug report with an optional solution and location.
	RecordBug RecordKind = "bug"
	// RecordRule is a project rule or convention.
	RecordRule RecordKind = "rule"
	// RecordTechItem is a technology mention mapped to a category.
	RecordTechItem RecordKind = "tech_item"
	// RecordPrompt is a reusable prompt captured from agent output.
	RecordPrompt RecordKind = "prompt"
)

// DecisionInput describes a decision record to persist.
type DecisionInput struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Reason      string  `json:"reason"`
}

// BugInput describes a bug record to persist. File, Line and Severity are
// optional; zero values mean unknown.
type BugInput struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Description string  `json:"description"`
	Solution    string  `json:"solution"`
	File        string  `json:"file,omitempty"`
	Line        int     `json:"line,omitempty"`
	Severity    string  `json:"severity,omitempty"`
}

// RuleInput describes a rule or convention record to persist.
type RuleInput struct {
	ProjectID *string `json:"project_id,omitempty"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Category  string  `json:"category"`
}

// TechItemInput describes a technology mention record to persist.
type TechItemInput struct {
	ProjectID *string `json:"project_id,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Note      string  `json:"note,omitempty"`
}

// PromptInput describes a reusable prompt record to persist.
type PromptInput struct {
	ProjectID *string `json:"project_id,omitempty"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
}

// SavedRecord is the reference returned by the persistence gateway for a
// stored record. References are accumulated into run metadata.
type SavedRecord struct {
	Kind  RecordKind `json:"kind"`
	ID    string     `json:"id"`
	Title string     `json:"title,omitempty"`
}
