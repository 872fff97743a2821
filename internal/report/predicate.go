package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Predicate is the collection-native portion of a report query: an inclusive
// calendar-day range on one date field plus exact-match and substring
// conditions on primary-record fields. It has two interpreters: ToBSON for
// the Mongo query and Matches for in-memory evaluation.
type Predicate struct {
	DateField string
	DateFrom  string // "YYYY-MM-DD", empty = unbounded
	DateTo    string
	Equals    map[string]string
	Contains  map[string]string
}

// ToBSON renders the predicate as a Mongo filter document. Date bounds use
// $gte/$lt over ISO strings so values carrying a time suffix still compare by
// calendar day.
func (p Predicate) ToBSON() bson.M {
	filter := bson.M{}

	if p.DateFrom != "" || p.DateTo != "" {
		dateCond := bson.M{}
		if p.DateFrom != "" {
			dateCond["$gte"] = p.DateFrom
		}
		if p.DateTo != "" {
			if next, ok := nextDay(p.DateTo); ok {
				dateCond["$lt"] = next
			} else {
				dateCond["$lte"] = p.DateTo
			}
		}
		filter[p.DateField] = dateCond
	}

	for field, value := range p.Equals {
		filter[field] = value
	}
	for field, term := range p.Contains {
		filter[field] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(term)}}
	}

	return filter
}

// Matches evaluates the predicate against a document in memory. Used by test
// doubles so fakes and the real store agree on semantics.
func (p Predicate) Matches(doc bson.M) bool {
	if p.DateFrom != "" || p.DateTo != "" {
		day, ok := calendarDay(doc[p.DateField])
		if !ok {
			return false
		}
		if p.DateFrom != "" && day < p.DateFrom {
			return false
		}
		if p.DateTo != "" && day > p.DateTo {
			return false
		}
	}

	for field, value := range p.Equals {
		if stringValue(doc[field]) != value {
			return false
		}
	}
	for field, term := range p.Contains {
		if !strings.Contains(stringValue(doc[field]), term) {
			return false
		}
	}

	return true
}

// calendarDay extracts "YYYY-MM-DD" from string or time-typed values.
func calendarDay(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		if len(t) >= 10 {
			return t[:10], true
		}
		return t, t != ""
	case time.Time:
		return t.Format("2006-01-02"), true
	case primitive.DateTime:
		return t.Time().UTC().Format("2006-01-02"), true
	default:
		return "", false
	}
}

func nextDay(day string) (string, bool) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02"), true
}

func stringValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
