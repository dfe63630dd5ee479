// Package format renders a parsed file back out in the two shapes §6's
// CLI commands need: format-identity (exact source bytes) and
// format-tree (an XML dump of the CST, with whitespace and comments
// reinserted as trivia). Both read-only views share nothing with
// lowering or analysis — they operate on the token stream and CST
// alone.
package format

import "github.com/jlang-gyoji/gyoji/lang/token"

// Identity reconstructs the original source bytes of tokens. It is the
// format-identity command's entire implementation: since TokenStream
// already retains whitespace, comments, and file-metadata tokens
// verbatim, concatenating their text in order is the round-trip.
func Identity(tokens *token.TokenStream) string {
	return tokens.Identity()
}
