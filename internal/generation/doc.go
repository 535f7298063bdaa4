// Package generation turns an ordered list of input terms into an equally
// ordered list of flashcards. It abstracts the language model behind the
// TextGenerator interface and implements the batch pipeline: terms are
// grouped into batches, each batch is generated with a single model call, and
// a failed batch degrades to per-term calls so one bad response never aborts
// the run.
package generation
