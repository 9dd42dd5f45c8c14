package database

import (
	"fmt"
	"strings"
)

const (
	columnPillar     = "pillar"
	columnStatus     = "status"
	columnOwner      = "owner"
	columnPriority   = "priority"
	columnPlainsware = "plainsware_project"
	columnStartDate  = "start_date"
	columnDueDate    = "due_date"
)

// QueryBuilder helps build WHERE clauses safely. Column names come from
// package constants; every value is bound through a ? placeholder.
type QueryBuilder struct {
	conditions []string
	args       []interface{}
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = ?", column))
	qb.args = append(qb.args, value)
}

// AddSearch matches term as a case-insensitive substring of name OR
// description.
func (qb *QueryBuilder) AddSearch(term string) {
	like := "%" + strings.ToLower(term) + "%"
	qb.conditions = append(qb.conditions, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
	qb.args = append(qb.args, like, like)
}

// AddYear matches the calendar year of a stored ISO date column. Rows with
// a blank or unparseable date produce NULL from strftime and are excluded.
func (qb *QueryBuilder) AddYear(column string, year int) {
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER) = ?", column))
	qb.args = append(qb.args, year)
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}
