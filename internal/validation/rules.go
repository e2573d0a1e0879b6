// Package validation evaluates declarative per-field rule sets against
// decoded JSON payloads.
package validation

import "strconv"

// Rule kinds.
const (
	KindRequired = "required"
	KindString   = "string"
	KindMax      = "max"
	KindEmail    = "email"
	KindInteger  = "integer"
	KindUnique   = "unique"
	KindExists   = "exists"
)

// Rule is one predicate applied to a field value.
type Rule struct {
	Kind string
	// Param is the numeric bound for max.
	Param string
	// Table and Column address the store for unique and exists.
	Table  string
	Column string
	// IgnoreID exempts one row from unique.
	IgnoreID uint
}

// Field is a payload key and its ordered rules. A Sometimes field is only
// validated when the key is present in the payload.
type Field struct {
	Name      string
	Sometimes bool
	Rules     []Rule
}

// RuleSet is a named, ordered list of fields.
type RuleSet struct {
	Name   string
	Fields []Field
}

func Required() Rule { return Rule{Kind: KindRequired} }
func String() Rule   { return Rule{Kind: KindString} }
func Email() Rule    { return Rule{Kind: KindEmail} }
func Integer() Rule  { return Rule{Kind: KindInteger} }

// Max bounds a string's length in characters.
func Max(n int) Rule { return Rule{Kind: KindMax, Param: strconv.Itoa(n)} }

// Unique fails when another row already has the value in table.column.
func Unique(table, column string, ignoreID uint) Rule {
	return Rule{Kind: KindUnique, Table: table, Column: column, IgnoreID: ignoreID}
}

// Exists fails when no row has the value in table.column.
func Exists(table, column string) Rule {
	return Rule{Kind: KindExists, Table: table, Column: column}
}

// UserRules validates user create and update payloads. ignoreID exempts the
// user's own row from the email uniqueness check; pass 0 to check every row.
func UserRules(ignoreID uint) RuleSet {
	return RuleSet{
		Name: "user",
		Fields: []Field{
			{Name: "name", Rules: []Rule{Required(), String(), Max(255)}},
			{Name: "email", Rules: []Rule{Required(), String(), Email(), Max(255), Unique("users", "email", ignoreID)}},
		},
	}
}

// PostCreateRules validates POST /posts.
func PostCreateRules() RuleSet {
	return RuleSet{
		Name: "post_create",
		Fields: []Field{
			{Name: "title", Rules: []Rule{Required(), String(), Max(255)}},
			{Name: "content", Rules: []Rule{Required(), String()}},
			{Name: "user_id", Rules: []Rule{Required(), Integer(), Exists("users", "id")}},
		},
	}
}

// PostUpdateRules validates PUT /posts/{id}; user_id is checked only when sent.
func PostUpdateRules() RuleSet {
	return RuleSet{
		Name: "post_update",
		Fields: []Field{
			{Name: "title", Rules: []Rule{Required(), String(), Max(255)}},
			{Name: "content", Rules: []Rule{Required(), String()}},
			{Name: "user_id", Sometimes: true, Rules: []Rule{Required(), Integer(), Exists("users", "id")}},
		},
	}
}

// PostForUserRules validates POST /users/{user}/posts. The owner comes from
// the path, so a submitted user_id is dropped.
func PostForUserRules() RuleSet {
	return RuleSet{
		Name: "post_for_user",
		Fields: []Field{
			{Name: "title", Rules: []Rule{Required(), String(), Max(255)}},
			{Name: "content", Rules: []Rule{Required(), String()}},
		},
	}
}
