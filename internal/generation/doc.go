// Package generation defines the boundary between the application core
// and external language model services used to produce example sentences
// for vocabulary items.
package generation
