// Package transcode owns the model transcoding service.
//
// Ownership boundary:
// - kind/format resolution for runtime requests
// - decode-then-encode with codec metrics
// - HTTP surface (gin) over the service
package transcode
