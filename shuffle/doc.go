// Package shuffle produces randomized orderings of questions and of the
// alternatives inside each question.
//
// All operations take an explicit *rand.Rand so callers control seeding;
// a fixed seed yields the same ordering on every run. Inputs are never
// mutated, results are deep copies.
package shuffle
