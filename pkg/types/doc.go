// Package types defines the results snortamv commands return.
//
// Every result carries json and yaml tags so the machine-readable renderers
// can emit it directly, and a ResultName used as the XML root element.
package types
