package core

// Identity identifies the author of persisted snapshots (Git commit author).
type Identity struct {
	Name  string
	Email string
}
