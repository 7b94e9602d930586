// Package store defines the persistence contracts of the study service:
// per-scope review stores, per-deck settings and user accounts. Concrete
// implementations live under internal/platform.
package store
