package report

import (
	"context"
	"strconv"
	"strings"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lookupConcurrency bounds the number of in-flight related-entity lookups.
const lookupConcurrency = 8

type Pagination struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	PageCount     int `json:"pageCount"`
	TotalDocument int `json:"totalDocument"`
}

type Result struct {
	Rows       []bson.M
	Pagination Pagination
}

// Assembler produces report pages: it pushes the collection-native portion of
// the query to the store, resolves every configured foreign key, applies the
// deferred cross-entity predicates, and paginates what survives.
type Assembler struct {
	data   DataAccess
	logger *zap.Logger
}

func NewAssembler(data DataAccess, logger *zap.Logger) *Assembler {
	return &Assembler{data: data, logger: logger}
}

// candidate pairs a primary record with its resolved relations, indexed in
// Config.Relations order. A dangling foreign key leaves a nil entry.
type candidate struct {
	doc     bson.M
	related []bson.M
}

func (a *Assembler) RetrieveAll(ctx context.Context, cfg *Config, desc *query.Descriptor) (*Result, error) {
	native, deferredFilters, deferredSearches := a.splitPredicates(cfg, desc)

	docs, err := a.data.FindMany(ctx, cfg.Collection, native)
	if err != nil {
		return nil, err
	}

	candidates, err := a.enrich(ctx, cfg, docs)
	if err != nil {
		return nil, err
	}

	candidates = applyDeferred(candidates, deferredFilters, deferredSearches)

	total := len(candidates)
	pageCount := (total + desc.PageSize - 1) / desc.PageSize
	if pageCount < 1 {
		pageCount = 1
	}

	start := (desc.Page - 1) * desc.PageSize
	end := start + desc.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	rows := make([]bson.M, 0, end-start)
	for _, c := range candidates[start:end] {
		rows = append(rows, a.project(cfg, c))
	}

	a.logger.Debug("report assembled",
		zap.String("report", cfg.Name),
		zap.Int("totalDocument", total),
		zap.Int("page", desc.Page))

	return &Result{
		Rows: rows,
		Pagination: Pagination{
			Page:          desc.Page,
			PageSize:      desc.PageSize,
			PageCount:     pageCount,
			TotalDocument: total,
		},
	}, nil
}

// splitPredicates partitions the descriptor's conditions into the
// collection-native predicate and the deferred cross-entity ones.
func (a *Assembler) splitPredicates(cfg *Config, desc *query.Descriptor) (Predicate, []deferredCond, []deferredCond) {
	native := Predicate{
		DateField: cfg.DateField,
		DateFrom:  desc.Filters["dateFrom"],
		DateTo:    desc.Filters["dateTo"],
		Equals:    make(map[string]string),
		Contains:  make(map[string]string),
	}

	var filters, searches []deferredCond

	for _, fd := range cfg.Filters {
		value, ok := desc.Filters[fd.Key]
		if !ok {
			continue
		}
		if fd.Target.Relation == "" {
			native.Equals[fd.Target.Field] = value
		} else {
			filters = append(filters, deferredCond{
				relIndex: cfg.relationIndex(fd.Target.Relation),
				field:    fd.Target.Field,
				value:    value,
			})
		}
	}

	for _, sd := range cfg.Searches {
		term, ok := desc.Search[sd.Key]
		if !ok {
			continue
		}
		if sd.Target.Relation == "" {
			native.Contains[sd.Target.Field] = term
		} else {
			searches = append(searches, deferredCond{
				relIndex: cfg.relationIndex(sd.Target.Relation),
				field:    sd.Target.Field,
				value:    term,
			})
		}
	}

	return native, filters, searches
}

// enrich resolves every configured foreign key for every candidate. Lookups
// run concurrently but land in per-candidate, per-relation slots, so the
// candidate order from the primary collection is preserved.
func (a *Assembler) enrich(ctx context.Context, cfg *Config, docs []bson.M) ([]candidate, error) {
	relCount := len(cfg.Relations)
	lookups := make([]bson.M, len(docs)*relCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for i, doc := range docs {
		for j, rel := range cfg.Relations {
			fk, ok := doc[rel.ForeignKey]
			if !ok || fk == nil {
				continue
			}
			slot := i*relCount + j
			collection := rel.Collection
			g.Go(func() error {
				related, err := a.data.FindByID(gctx, collection, fk)
				if err != nil {
					return err
				}
				// A missing related entity is not an error; the slot stays nil
				// and the row simply lacks those fields.
				lookups[slot] = related
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]candidate, len(docs))
	for i, doc := range docs {
		candidates[i] = candidate{
			doc:     doc,
			related: lookups[i*relCount : (i+1)*relCount],
		}
	}
	return candidates, nil
}

type deferredCond struct {
	relIndex int
	field    string
	value    string
}

func applyDeferred(candidates []candidate, filters, searches []deferredCond) []candidate {
	if len(filters) == 0 && len(searches) == 0 {
		return candidates
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if matchesDeferred(c, filters, searches) {
			kept = append(kept, c)
		}
	}
	return kept
}

func matchesDeferred(c candidate, filters, searches []deferredCond) bool {
	for _, cond := range filters {
		if c.relatedValue(cond.relIndex, cond.field) != cond.value {
			return false
		}
	}
	for _, cond := range searches {
		if !strings.Contains(c.relatedValue(cond.relIndex, cond.field), cond.value) {
			return false
		}
	}
	return true
}

// relatedValue reads a field off the resolved relation slot; a dangling
// foreign key yields the empty string and so never satisfies a condition.
func (c candidate) relatedValue(relIndex int, field string) string {
	if relIndex < 0 || relIndex >= len(c.related) || c.related[relIndex] == nil {
		return ""
	}
	return stringValue(c.related[relIndex][field])
}

// project maps a surviving candidate into the report's output shape: the
// primary-record identity plus the configured field subsets and computed
// values.
func (a *Assembler) project(cfg *Config, c candidate) bson.M {
	out := bson.M{"_id": c.doc["_id"]}

	for _, field := range cfg.Fields {
		if v, ok := c.doc[field]; ok {
			out[field] = v
		}
	}

	for i, rel := range cfg.Relations {
		related := c.related[i]
		if related == nil {
			continue
		}
		if rel.Nested {
			nested := bson.M{}
			for _, field := range rel.Fields {
				if v, ok := related[field]; ok {
					nested[field] = v
				}
			}
			out[rel.Name] = nested
			continue
		}
		for _, field := range rel.Fields {
			if v, ok := related[field]; ok {
				out[field] = v
			}
		}
	}

	for _, cf := range cfg.Computed {
		if v, ok := evalComputed(cf, c.doc); ok {
			out[cf.Name] = v
		}
	}

	return out
}

func evalComputed(cf ComputedField, doc bson.M) (float64, bool) {
	params := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if f, ok := toFloat(v); ok {
			params[k] = f
		}
	}

	result, err := cf.expr.Evaluate(params)
	if err != nil {
		return 0, false
	}
	f, ok := result.(float64)
	return f, ok
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
