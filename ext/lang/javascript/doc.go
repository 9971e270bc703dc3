// Package javascript provides JavaScript support for the editor: syntax
// highlighting mapped onto theme tags, keyword completion and folding of
// bracketed constructs. Documents are parsed with the tree-sitter
// JavaScript grammar, or the TypeScript and TSX grammars when the dialect
// asks for them.
package javascript
