// Package dumd parses a small, self-consistent markup language into typed
// element values and serializes them back.
//
// Parsing is two-stage: Tokenize turns source text into runs, text and
// numbers, and each element parser consumes those tokens with no
// backtracking. Every element parser requires the whole input to be exactly
// one instance of its construct, and String on any parsed value yields
// source that parses to an equal value.
//
// Core properties:
//   - Lossless tokenizer: concatenating token text reproduces the input
//   - Fence length is part of a code block's value
//   - Emphasis depth is a toggle over *, ** and ***
//   - Link targets are absolute URLs or reference names
//
// Example:
//
//	h, err := dumd.ParseHeading("# Hello")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(h.Level(), h.Content())
//
// ParseDocument splits a whole file into blocks, and Render writes a parsed
// document to a terminal using a Theme and RenderOptions such as OSC 8
// hyperlink support.
package dumd
