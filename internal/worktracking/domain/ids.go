package domain

import "github.com/google/uuid"

const (
	ProjectIDPrefix  = "proj"
	AreaIDPrefix     = "area"
	WorkItemIDPrefix = "item"
	SubWorkIDPrefix  = "sub"
)

// NewID returns a fresh identifier, e.g. "proj-3f0c...". Ids are never reused.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
