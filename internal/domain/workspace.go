package domain

// WorkspaceSpec describes where a quadra workspace is created.
type WorkspaceSpec struct {
	Root string
}
