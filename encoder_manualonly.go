//go:build manualonly

package main

func libraryEncoder() (IconEncoder, bool) {
	return nil, false
}
