// Package segment groups an extracted document's ordered blocks into
// questions with their answer alternatives.
//
// Segmentation is a single pass over the block stream. A block opens a
// question when it starts with a numbering marker ("1.", "1)" or
// "Questão 1"); subsequent alternative blocks ("(A) ...", "a) ...")
// accumulate onto the open question; table-classified blocks fold into
// the open statement as inline markup. A question reaches the result only
// once at least one alternative has been collected, so a trailing
// statement with no alternatives is dropped.
package segment
