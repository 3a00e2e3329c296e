package sbx

import (
	"encoding/json"
	"strings"
)

// Operation identifies a comparison operator in a where condition. The
// values are the exact symbols the backend expects in the OP field.
type Operation string

// Supported comparison operators.
const (
	OpEqual          Operation = "="
	OpNotEqual       Operation = "!="
	OpGreaterThan    Operation = ">"
	OpGreaterOrEqual Operation = ">="
	OpLessThan       Operation = "<"
	OpLessOrEqual    Operation = "<="
	OpLike           Operation = "LIKE"
	OpIn             Operation = "IN"
	OpNotIn          Operation = "NOT IN"
	OpIs             Operation = "IS"
	OpIsNot          Operation = "IS NOT"
)

// AndOr is the logical connective joining a condition (or a group of
// conditions) to the ones before it.
type AndOr string

// Logical connectives.
const (
	And AndOr = "AND"
	Or  AndOr = "OR"
)

// LogicalExpression is a single field comparison inside a condition group.
// Val is deliberately not omitempty: IS and IS NOT conditions must
// serialize VAL as an explicit JSON null.
type LogicalExpression struct {
	AndOr AndOr     `json:"ANDOR"`
	Field string    `json:"FIELD"`
	Op    Operation `json:"OP"`
	Val   any       `json:"VAL"`
}

// LogicalGroup is an ordered list of expressions joined to the previous
// group by AndOr. Expressions keep their insertion order on the wire.
type LogicalGroup struct {
	AndOr AndOr               `json:"ANDOR"`
	Group []LogicalExpression `json:"GROUP"`
}

// WhereClause is the where portion of a find request. It holds either
// condition groups or an explicit key list, never both. Construct one with
// Conditions or Keys; the zero value serializes as an empty group list.
type WhereClause struct {
	groups []LogicalGroup
	keys   []string
}

// Conditions builds a where clause from condition groups.
func Conditions(groups []LogicalGroup) WhereClause {
	return WhereClause{groups: groups}
}

// Keys builds a where clause that selects rows by primary key.
func Keys(keys []string) WhereClause {
	return WhereClause{keys: keys}
}

// IsKeys reports whether the clause selects by key list.
func (w WhereClause) IsKeys() bool {
	return w.keys != nil
}

// Groups returns the condition groups, or nil for a key-based clause.
func (w WhereClause) Groups() []LogicalGroup {
	return w.groups
}

// KeyList returns the key list, or nil for a condition-based clause.
func (w WhereClause) KeyList() []string {
	return w.keys
}

type keysEnvelope struct {
	Keys []string `json:"keys"`
}

// MarshalJSON serializes a key clause as {"keys": [...]} and a condition
// clause as a plain array of groups.
func (w WhereClause) MarshalJSON() ([]byte, error) {
	if w.keys != nil {
		return json.Marshal(keysEnvelope{Keys: w.keys})
	}

	groups := w.groups
	if groups == nil {
		groups = []LogicalGroup{}
	}

	return json.Marshal(groups)
}

// UnmarshalJSON accepts either wire shape of a where clause.
func (w *WhereClause) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		var env keysEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}

		*w = WhereClause{keys: env.Keys}

		return nil
	}

	var groups []LogicalGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}

	*w = WhereClause{groups: groups}

	return nil
}

// FindQuery is a fluent builder for find requests. All methods mutate the
// builder and return it, so calls chain:
//
//	query := sbx.NewFindQuery("product").
//		AndWhereIsEqualTo("category", "tools").
//		NewGroupWithOr().
//		AndWhereContains("name", "drill").
//		SetPageSize(50)
//
// A builder stays usable after Compile; the auto-paginator relies on
// compiling the same builder once per page.
type FindQuery struct {
	rowModel string
	groups   []LogicalGroup
	keys     []string
	page     int
	size     int
	fetch    []string
	rfetch   []string
	autowire []string
}

// NewFindQuery creates a builder for the given row model.
func NewFindQuery(rowModel string) *FindQuery {
	return &FindQuery{rowModel: rowModel}
}

// QueryFor creates a builder for the entity type's row model.
func QueryFor[T Entity]() *FindQuery {
	var zero T

	return NewFindQuery(zero.EntityModel())
}

// RowModel returns the model name the query targets.
func (q *FindQuery) RowModel() string {
	return q.rowModel
}

// NewGroupWithAnd opens a new condition group joined with AND.
func (q *FindQuery) NewGroupWithAnd() *FindQuery {
	q.groups = append(q.groups, LogicalGroup{AndOr: And})

	return q
}

// NewGroupWithOr opens a new condition group joined with OR.
func (q *FindQuery) NewGroupWithOr() *FindQuery {
	q.groups = append(q.groups, LogicalGroup{AndOr: Or})

	return q
}

// addCondition appends an expression to the current group, opening an
// implicit AND group when none exists yet.
func (q *FindQuery) addCondition(andOr AndOr, field string, op Operation, val any) *FindQuery {
	if len(q.groups) == 0 {
		q.groups = append(q.groups, LogicalGroup{AndOr: And})
	}

	last := len(q.groups) - 1
	q.groups[last].Group = append(q.groups[last].Group, LogicalExpression{
		AndOr: andOr,
		Field: field,
		Op:    op,
		Val:   val,
	})

	return q
}

// AndWhereIsEqualTo adds an AND equality condition.
func (q *FindQuery) AndWhereIsEqualTo(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpEqual, val)
}

// AndWhereIsNotEqualTo adds an AND inequality condition.
func (q *FindQuery) AndWhereIsNotEqualTo(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpNotEqual, val)
}

// AndWhereIsGreaterThan adds an AND strict greater-than condition.
func (q *FindQuery) AndWhereIsGreaterThan(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpGreaterThan, val)
}

// AndWhereIsGreaterOrEqualTo adds an AND greater-or-equal condition.
func (q *FindQuery) AndWhereIsGreaterOrEqualTo(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpGreaterOrEqual, val)
}

// AndWhereIsLessThan adds an AND strict less-than condition.
func (q *FindQuery) AndWhereIsLessThan(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpLessThan, val)
}

// AndWhereIsLessOrEqualTo adds an AND less-or-equal condition.
func (q *FindQuery) AndWhereIsLessOrEqualTo(field string, val any) *FindQuery {
	return q.addCondition(And, field, OpLessOrEqual, val)
}

// AndWhereIsNull adds an AND null check.
func (q *FindQuery) AndWhereIsNull(field string) *FindQuery {
	return q.addCondition(And, field, OpIs, nil)
}

// AndWhereIsNotNull adds an AND non-null check.
func (q *FindQuery) AndWhereIsNotNull(field string) *FindQuery {
	return q.addCondition(And, field, OpIsNot, nil)
}

// AndWhereStartsWith adds an AND prefix match. The pattern is the value
// with a trailing %.
func (q *FindQuery) AndWhereStartsWith(field, val string) *FindQuery {
	return q.addCondition(And, field, OpLike, val+"%")
}

// AndWhereEndsWith adds an AND suffix match. The pattern is the value with
// a leading %.
func (q *FindQuery) AndWhereEndsWith(field, val string) *FindQuery {
	return q.addCondition(And, field, OpLike, "%"+val)
}

// AndWhereContains adds an AND substring match. Literal % characters in the
// value are stripped before wrapping it in wildcards, so the input is always
// treated as plain text.
func (q *FindQuery) AndWhereContains(field, val string) *FindQuery {
	return q.addCondition(And, field, OpLike, containsPattern(val))
}

// AndWhereIsIn adds an AND set membership condition. Value order is kept.
func (q *FindQuery) AndWhereIsIn(field string, vals []any) *FindQuery {
	return q.addCondition(And, field, OpIn, vals)
}

// AndWhereIsNotIn adds an AND set exclusion condition. Value order is kept.
func (q *FindQuery) AndWhereIsNotIn(field string, vals []any) *FindQuery {
	return q.addCondition(And, field, OpNotIn, vals)
}

// OrWhereIsEqualTo adds an OR equality condition.
func (q *FindQuery) OrWhereIsEqualTo(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpEqual, val)
}

// OrWhereIsNotEqualTo adds an OR inequality condition.
func (q *FindQuery) OrWhereIsNotEqualTo(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpNotEqual, val)
}

// OrWhereIsGreaterThan adds an OR strict greater-than condition.
func (q *FindQuery) OrWhereIsGreaterThan(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpGreaterThan, val)
}

// OrWhereIsGreaterOrEqualTo adds an OR greater-or-equal condition.
func (q *FindQuery) OrWhereIsGreaterOrEqualTo(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpGreaterOrEqual, val)
}

// OrWhereIsLessThan adds an OR strict less-than condition.
func (q *FindQuery) OrWhereIsLessThan(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpLessThan, val)
}

// OrWhereIsLessOrEqualTo adds an OR less-or-equal condition.
func (q *FindQuery) OrWhereIsLessOrEqualTo(field string, val any) *FindQuery {
	return q.addCondition(Or, field, OpLessOrEqual, val)
}

// OrWhereIsNull adds an OR null check.
func (q *FindQuery) OrWhereIsNull(field string) *FindQuery {
	return q.addCondition(Or, field, OpIs, nil)
}

// OrWhereIsNotNull adds an OR non-null check.
func (q *FindQuery) OrWhereIsNotNull(field string) *FindQuery {
	return q.addCondition(Or, field, OpIsNot, nil)
}

// OrWhereStartsWith adds an OR prefix match.
func (q *FindQuery) OrWhereStartsWith(field, val string) *FindQuery {
	return q.addCondition(Or, field, OpLike, val+"%")
}

// OrWhereEndsWith adds an OR suffix match.
func (q *FindQuery) OrWhereEndsWith(field, val string) *FindQuery {
	return q.addCondition(Or, field, OpLike, "%"+val)
}

// OrWhereContains adds an OR substring match with the same % stripping as
// AndWhereContains.
func (q *FindQuery) OrWhereContains(field, val string) *FindQuery {
	return q.addCondition(Or, field, OpLike, containsPattern(val))
}

// OrWhereIsIn adds an OR set membership condition.
func (q *FindQuery) OrWhereIsIn(field string, vals []any) *FindQuery {
	return q.addCondition(Or, field, OpIn, vals)
}

// OrWhereIsNotIn adds an OR set exclusion condition.
func (q *FindQuery) OrWhereIsNotIn(field string, vals []any) *FindQuery {
	return q.addCondition(Or, field, OpNotIn, vals)
}

// WhereWithKeys selects rows by primary key. A key list takes precedence
// over any condition groups when the query compiles; calling it again
// replaces the previous list.
func (q *FindQuery) WhereWithKeys(keys []string) *FindQuery {
	q.keys = keys

	return q
}

// FetchModels sets the reference fields to resolve inline. Replaces any
// previous fetch list.
func (q *FindQuery) FetchModels(models []string) *FindQuery {
	q.fetch = models

	return q
}

// FetchReferencingModels sets the reverse-reference models to resolve.
// Replaces any previous list.
func (q *FindQuery) FetchReferencingModels(models []string) *FindQuery {
	q.rfetch = models

	return q
}

// SetAutowire sets the autowire field list. Replaces any previous list.
func (q *FindQuery) SetAutowire(fields []string) *FindQuery {
	q.autowire = fields

	return q
}

// SetPage sets the 1-based page to request.
func (q *FindQuery) SetPage(page int) *FindQuery {
	q.page = page

	return q
}

// SetPageSize sets the page size.
func (q *FindQuery) SetPageSize(size int) *FindQuery {
	q.size = size

	return q
}

// Compile projects the builder into an immutable FindRequest. The builder
// is not consumed: compiling again after further mutation yields a request
// reflecting the new state, and earlier requests are unaffected.
func (q *FindQuery) Compile() *FindRequest {
	req := &FindRequest{
		RowModel: q.rowModel,
		Page:     q.page,
		Size:     q.size,
		Fetch:    copySlice(q.fetch),
		RFetch:   copySlice(q.rfetch),
		Autowire: copySlice(q.autowire),
	}

	switch {
	case q.keys != nil:
		where := Keys(copySlice(q.keys))
		req.Where = &where
	case len(q.groups) > 0:
		where := Conditions(copyGroups(q.groups))
		req.Where = &where
	}

	return req
}

func containsPattern(val string) string {
	return "%" + strings.ReplaceAll(val, "%", "") + "%"
}

func copySlice[T any](src []T) []T {
	if src == nil {
		return nil
	}

	dst := make([]T, len(src))
	copy(dst, src)

	return dst
}

func copyGroups(src []LogicalGroup) []LogicalGroup {
	dst := make([]LogicalGroup, len(src))
	for i, g := range src {
		dst[i] = LogicalGroup{AndOr: g.AndOr, Group: copySlice(g.Group)}
	}

	return dst
}
