package sql

import (
	"strings"

	"github.com/nickyhof/MiniDB/core"
)

type CommandType int

const (
	CreateTableCommandType CommandType = iota
	InsertCommandType
	SelectCommandType
	UpdateCommandType
	DeleteCommandType
	ShowIndexCommandType
)

func (commandType CommandType) String() string {
	switch commandType {
	case CreateTableCommandType:
		return "CREATE_TABLE"
	case InsertCommandType:
		return "INSERT"
	case SelectCommandType:
		return "SELECT"
	case UpdateCommandType:
		return "UPDATE"
	case DeleteCommandType:
		return "DELETE"
	case ShowIndexCommandType:
		return "SHOW_INDEX"
	default:
		return "UNKNOWN"
	}
}

// Command is one parsed query. The set of implementations is closed: only
// the command types of this package satisfy it.
type Command interface {
	Type() CommandType
	command()
}

type CreateTableCommand struct {
	Table   string
	Columns []core.Column
}

type InsertCommand struct {
	Table  string
	Values []core.Value
}

type SelectCommand struct {
	Table   string
	Columns []string
	Join    *JoinClause
	Where   *WhereClause
}

type JoinClause struct {
	Table string
	Left  ColumnRef
	Right ColumnRef
}

// ColumnRef is a table.column pair as written in a JOIN condition.
type ColumnRef struct {
	Table  string
	Column string
}

// WhereClause is a single equality filter.
type WhereClause struct {
	Column string
	Value  core.Value
}

// Matches reports whether the row's value for the filter column equals the
// filter value.
func (where *WhereClause) Matches(row core.Row) bool {
	value, ok := row[where.Column]
	return ok && value.Equal(where.Value)
}

type UpdateCommand struct {
	Table  string
	Column string
	Value  core.Value
	Where  *WhereClause
}

type DeleteCommand struct {
	Table string
	Where *WhereClause
}

type ShowIndexCommand struct {
	Table string
}

func (CreateTableCommand) Type() CommandType { return CreateTableCommandType }
func (InsertCommand) Type() CommandType      { return InsertCommandType }
func (SelectCommand) Type() CommandType      { return SelectCommandType }
func (UpdateCommand) Type() CommandType      { return UpdateCommandType }
func (DeleteCommand) Type() CommandType      { return DeleteCommandType }
func (ShowIndexCommand) Type() CommandType   { return ShowIndexCommandType }

func (CreateTableCommand) command() {}
func (InsertCommand) command()      {}
func (SelectCommand) command()      {}
func (UpdateCommand) command()      {}
func (DeleteCommand) command()      {}
func (ShowIndexCommand) command()   {}

type Parser struct {
	tokens []string
}

func NewParser(tokens []string) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a single query.
func Parse(query string) (Command, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// ParseTokens parses an already tokenized query.
func ParseTokens(tokens []string) (Command, error) {
	return NewParser(tokens).Parse()
}

func (parser *Parser) Parse() (Command, error) {
	if len(parser.tokens) == 0 {
		return nil, &UnsupportedCommandError{}
	}

	keyword := toUpper(parser.tokens[0])
	switch keyword {
	case "CREATE":
		return parser.parseCreate()
	case "INSERT":
		return parser.parseInsert()
	case "SELECT":
		return parser.parseSelect()
	case "UPDATE":
		return parser.parseUpdate()
	case "DELETE":
		return parser.parseDelete()
	case "SHOW":
		return parser.parseShow()
	default:
		return nil, &UnsupportedCommandError{Command: keyword}
	}
}

// at returns the token at position i, or a MissingClauseError naming the
// clause the token belongs to.
func (parser *Parser) at(i int, command, clause string) (string, error) {
	if i < 0 || i >= len(parser.tokens) {
		return "", &MissingClauseError{Command: command, Clause: clause}
	}
	return parser.tokens[i], nil
}

// indexOf returns the position of the first token equal to keyword
// (case-sensitive), or -1.
func (parser *Parser) indexOf(keyword string) int {
	for i, token := range parser.tokens {
		if token == keyword {
			return i
		}
	}
	return -1
}

func (parser *Parser) parseCreate() (Command, error) {
	const command = "CREATE"

	if token, _ := parser.at(1, command, "TABLE"); token != "TABLE" {
		return nil, &MissingClauseError{Command: command, Clause: "TABLE"}
	}

	table, err := parser.at(2, command, "table name")
	if err != nil {
		return nil, err
	}

	open := parser.indexOf("(")
	if open == -1 {
		return nil, &MissingClauseError{Command: command, Clause: "("}
	}

	var columns []core.Column
	i := open + 1
	for {
		token, err := parser.at(i, command, ")")
		if err != nil {
			return nil, err
		}
		if token == ")" {
			break
		}

		name := token
		i++
		columnType, err := parser.at(i, command, "column type")
		if err != nil {
			return nil, err
		}
		if columnType == "," || columnType == ")" {
			return nil, &MissingClauseError{Command: command, Clause: "column type"}
		}
		i++

		column := core.Column{Name: name, Type: columnType}

		// Modifiers run until the next comma or closing paren; unknown ones are skipped.
		for i < len(parser.tokens) && parser.tokens[i] != "," && parser.tokens[i] != ")" {
			switch parser.tokens[i] {
			case "PRIMARY":
				column.Primary = true
			case "UNIQUE":
				column.Unique = true
			}
			i++
		}

		columns = append(columns, column)

		if i < len(parser.tokens) && parser.tokens[i] == "," {
			i++
		}
	}

	return CreateTableCommand{Table: table, Columns: columns}, nil
}

func (parser *Parser) parseInsert() (Command, error) {
	const command = "INSERT"

	table, err := parser.at(2, command, "table name")
	if err != nil {
		return nil, err
	}

	open := parser.indexOf("(")
	if open == -1 {
		return nil, &MissingClauseError{Command: command, Clause: "("}
	}

	values := []core.Value{}
	i := open + 1
	for {
		token, err := parser.at(i, command, ")")
		if err != nil {
			return nil, err
		}
		if token == ")" {
			break
		}

		values = append(values, literal(token))
		i++

		if i < len(parser.tokens) && parser.tokens[i] == "," {
			i++
		}
	}

	return InsertCommand{Table: table, Values: values}, nil
}

func (parser *Parser) parseSelect() (Command, error) {
	const command = "SELECT"

	from := parser.indexOf("FROM")
	if from == -1 {
		return nil, &MissingClauseError{Command: command, Clause: "FROM"}
	}

	table, err := parser.at(from+1, command, "table name")
	if err != nil {
		return nil, err
	}

	selectCommand := SelectCommand{
		Table:   table,
		Columns: append([]string{}, parser.tokens[1:from]...),
	}

	if j := parser.indexOf("JOIN"); j != -1 {
		join, err := parser.parseJoin(j)
		if err != nil {
			return nil, err
		}
		selectCommand.Join = join
	}

	if w := parser.indexOf("WHERE"); w != -1 {
		where, err := parser.parseWhere(command, w, literal)
		if err != nil {
			return nil, err
		}
		selectCommand.Where = where
	}

	return selectCommand, nil
}

// parseJoin reads JOIN <table> ON <left> = <right>. The ON and = tokens are
// positional placeholders and are not checked.
func (parser *Parser) parseJoin(j int) (*JoinClause, error) {
	const command, clause = "SELECT", "JOIN ... ON"

	table, err := parser.at(j+1, command, clause)
	if err != nil {
		return nil, err
	}
	left, err := parser.at(j+3, command, clause)
	if err != nil {
		return nil, err
	}
	right, err := parser.at(j+5, command, clause)
	if err != nil {
		return nil, err
	}

	return &JoinClause{
		Table: table,
		Left:  splitColumnRef(left),
		Right: splitColumnRef(right),
	}, nil
}

// parseWhere reads WHERE <column> = <value>; the = token is not checked.
func (parser *Parser) parseWhere(command string, w int, convert func(string) core.Value) (*WhereClause, error) {
	column, err := parser.at(w+1, command, "WHERE column")
	if err != nil {
		return nil, err
	}
	value, err := parser.at(w+3, command, "WHERE value")
	if err != nil {
		return nil, err
	}

	return &WhereClause{Column: column, Value: convert(value)}, nil
}

func (parser *Parser) parseUpdate() (Command, error) {
	const command = "UPDATE"

	table, err := parser.at(1, command, "table name")
	if err != nil {
		return nil, err
	}

	set := parser.indexOf("SET")
	if set == -1 {
		return nil, &MissingClauseError{Command: command, Clause: "SET"}
	}

	column, err := parser.at(set+1, command, "SET column")
	if err != nil {
		return nil, err
	}
	value, err := parser.at(set+3, command, "SET value")
	if err != nil {
		return nil, err
	}

	updateCommand := UpdateCommand{
		Table:  table,
		Column: column,
		Value:  literal(value),
	}

	if w := parser.indexOf("WHERE"); w != -1 {
		where, err := parser.parseWhere(command, w, numeric)
		if err != nil {
			return nil, err
		}
		updateCommand.Where = where
	}

	return updateCommand, nil
}

func (parser *Parser) parseDelete() (Command, error) {
	const command = "DELETE"

	table, err := parser.at(2, command, "table name")
	if err != nil {
		return nil, err
	}

	deleteCommand := DeleteCommand{Table: table}

	if w := parser.indexOf("WHERE"); w != -1 {
		where, err := parser.parseWhere(command, w, numeric)
		if err != nil {
			return nil, err
		}
		deleteCommand.Where = where
	}

	return deleteCommand, nil
}

func (parser *Parser) parseShow() (Command, error) {
	const command = "SHOW"

	if token, _ := parser.at(1, command, "INDEX"); toUpper(token) != "INDEX" {
		return nil, &MissingClauseError{Command: command, Clause: "INDEX"}
	}
	if token, _ := parser.at(2, command, "FROM"); toUpper(token) != "FROM" {
		return nil, &MissingClauseError{Command: command, Clause: "FROM"}
	}

	table, err := parser.at(3, command, "table name")
	if err != nil {
		return nil, err
	}

	return ShowIndexCommand{Table: table}, nil
}

func splitColumnRef(token string) ColumnRef {
	parts := strings.Split(token, ".")
	if len(parts) == 1 {
		return ColumnRef{Column: parts[0]}
	}
	return ColumnRef{Table: parts[0], Column: parts[1]}
}
