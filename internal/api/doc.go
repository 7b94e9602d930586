// Package api is the HTTP adapter for the study service. It decodes and
// validates requests, maps service errors to status codes and safe messages,
// and encodes JSON responses. Authentication uses bearer JWTs.
package api
