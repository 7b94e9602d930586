// Package service contains the application use cases that sit between the
// HTTP layer and the stores. Account registration and login live here; study
// sessions live in the study subpackage and token handling in auth.
//
// Services receive their stores through constructor injection and wrap
// multi-store writes in store.RunInTransaction.
package service
