package model

// Workspace is a named environment on the platform between which entities
// are copied. Only the identifier and name are relevant locally.
type Workspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
