// Package ast defines the vocabulary shared by every stage of the compiler.
//
// A source document flows through three shapes:
//
//	source text ──scanner──▶ TokenizedDocument ──parser──▶ ParsedDocument ──compiler──▶ text
//
// Both intermediate shapes are instances of the generic Document container.
// Tokens are flat and position-tagged; block tokens come in begin/end pairs.
// Elements are nested: Message and Details carry their body directly.
//
// Token and Element are sealed interfaces. Consumers switch over the closed
// set of variants and call UnknownToken or UnknownElement in the default
// branch, so a new variant fails loudly at every site that forgot it.
package ast
