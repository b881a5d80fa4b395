// Package sql provides tokenizing and parsing of the MiniDB query dialect.
//
// The dialect is deliberately narrow and positional: after the command
// keyword, most parts of a statement are read at fixed offsets from a few
// anchor tokens (FROM, JOIN, WHERE, SET) rather than validated against a
// full grammar.
//
// # Tokenizer Usage
//
//	tokens, err := sql.Tokenize(`INSERT INTO users (1, "Alice")`)
//	// [INSERT INTO users ( 1 , Alice )]
//
// # Parser Usage
//
//	command, err := sql.Parse("SELECT name FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	selectCommand := command.(sql.SelectCommand)
//
// # Supported Commands
//
//   - CREATE TABLE name (col TYPE [PRIMARY] [UNIQUE], ...)
//   - INSERT INTO name (value, ...)
//   - SELECT cols FROM name [JOIN other ON name.col = other.col] [WHERE col = value]
//   - UPDATE name SET col = value [WHERE col = value]
//   - DELETE FROM name [WHERE col = value]
//   - SHOW INDEX FROM name
package sql
