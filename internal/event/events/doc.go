// Package events defines the topics and payloads published on the quickfind
// event bus.
package events
