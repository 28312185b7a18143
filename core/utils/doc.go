// Package utils provides common helpers for the listing-merge application.
// It holds the optional-string conversions shared by the merge engine and the sinks.
package utils
