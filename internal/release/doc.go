// Package release talks to the remote release feed.
//
// The feed is expected to answer with a JSON body carrying a tag name and a
// list of downloadable assets; the client extracts the latest version and the
// installer bundle URL from it. Nothing is cached between calls.
package release
