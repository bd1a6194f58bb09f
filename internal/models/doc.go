// Package models holds the sample model types served by modelctl and the
// transcoding service.
//
// Ownership boundary:
// - sample model declarations and their defaults
// - catalog registration of the samples
package models
