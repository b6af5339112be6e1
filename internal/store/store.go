// Package store provides the durable keyed storage shared by the server
// repository and the client fallback path. Values are stored as JSON blobs
// under well-known keys; a missing key is seeded on first read so both
// sides start from the static reference data.
package store

// Keys used by the portfolio service. They match the names the site has
// always persisted under so an existing database keeps working.
const (
	KeyProjects = "portfolio_projects"
	KeyVisitors = "portfolio_visitors"
)

// Store is a synchronous keyed JSON store.
//
// Get decodes the value stored under key into out. When the key is absent
// the seed is persisted first and then decoded into out, so a first read
// and every later read observe the same data. Set persists value before
// returning. Implementations serialize access internally; callers never
// need their own locking.
type Store interface {
	Get(key string, seed, out any) error
	Set(key string, value any) error
}
