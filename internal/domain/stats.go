// Package domain contains the core data structures and domain logic for the application.
package domain

// RepoStats holds a snapshot of a repository's metadata at fetch time.
// It is the core domain entity of this application. Created once per run
// and never mutated afterwards.
type RepoStats struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Issues   int    `json:"issues"`
	Language string `json:"language"`
	Size     int    `json:"size"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
}
