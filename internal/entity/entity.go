package entity

// Entity is anything that can be persisted to an elastic search index.
type Entity interface {
	Slug() string
}
