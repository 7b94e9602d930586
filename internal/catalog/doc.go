// Package catalog holds the built-in study material: noun declensions,
// vocabulary and verb conjugations. Each domain provides its item type, the
// filter type users narrow a session with, and the predicate the scheduler
// applies.
//
// Catalogs are YAML documents compiled into the binary. A directory may be
// configured to override any of them; files missing from that directory fall
// back to the embedded copy.
package catalog
