// Package kv holds the synchronous string key/value substrates the order
// state is persisted into.
package kv

// KV is a synchronous string store keyed by name. Get reports a missing key
// with ok == false and a nil error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
