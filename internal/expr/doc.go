// Package expr compiles user-supplied math expressions for time-varying
// node parameters.
//
// Expressions use HCL expression syntax restricted to numbers, arithmetic,
// comparisons, the conditional operator, parentheses, a fixed table of math
// functions, the constants pi and e, and the variables a caller declares at
// compile time (typically t, frame and frames). Strings, collections,
// attribute access, for-expressions and templates are rejected before
// evaluation, and the evaluation context holds nothing but the declared
// variables and the function table.
package expr
