// Package utils converts the loosely typed values found in field service
// payloads, where a number may arrive as a JSON number or as a string.
package utils
