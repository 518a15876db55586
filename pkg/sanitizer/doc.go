// Package sanitizer normalises user input before validation and storage.
//
//	name := sanitizer.Apply(in.Name, sanitizer.Trim, sanitizer.SingleLine)
//	size := sanitizer.Clamp(size, 1, 100)
package sanitizer
