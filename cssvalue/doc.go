// Package cssvalue parses and formats the CSS value literals shared by the
// stylegraph subsystems: length literals with exact unit round-tripping,
// color literals (hex, rgb()/rgba(), named), and the WCAG luminance and
// contrast-ratio math used for accessibility-driven color selection.
package cssvalue
