package storage

// KV is a string key/value store with local-storage semantics: a missing key
// is not an error, and deleting a missing key succeeds.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
