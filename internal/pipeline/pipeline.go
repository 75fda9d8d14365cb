// Package pipeline builds Mongo aggregation pipelines from typed stage
// descriptors. Stages are appended in call order and validated once at
// Build time, so a composed pipeline is deterministic for the same
// inputs and never mutates data.
package pipeline

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

type Builder struct {
	stages mongo.Pipeline
	errs   []error
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) Match(filter bson.D) *Builder {
	if filter == nil {
		b.errs = append(b.errs, errors.New("match: nil filter"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$match", Value: filter}})
	return b
}

// MatchRegex adds a case-insensitive substring match on field.
func (b *Builder) MatchRegex(field, pattern string) *Builder {
	if field == "" {
		b.errs = append(b.errs, errors.New("matchRegex: empty field"))
		return b
	}
	return b.Match(bson.D{{Key: field, Value: bson.D{
		{Key: "$regex", Value: pattern},
		{Key: "$options", Value: "i"},
	}}})
}

func (b *Builder) Lookup(from, localField, foreignField, as string) *Builder {
	if from == "" || localField == "" || foreignField == "" || as == "" {
		b.errs = append(b.errs, errors.New("lookup: all fields are required"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	}}})
	return b
}

// LookupPipeline joins with a sub-pipeline applied to the foreign
// collection, used for nested joins and restricted projections.
func (b *Builder) LookupPipeline(from, localField, foreignField, as string, sub mongo.Pipeline) *Builder {
	if from == "" || localField == "" || foreignField == "" || as == "" {
		b.errs = append(b.errs, errors.New("lookup: all fields are required"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "pipeline", Value: sub},
		{Key: "as", Value: as},
	}}})
	return b
}

// Unwind flattens a joined array field. Rows whose array is empty are
// dropped, which is how orphaned references disappear from list views.
func (b *Builder) Unwind(path string) *Builder {
	if path == "" {
		b.errs = append(b.errs, errors.New("unwind: empty path"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$unwind", Value: "$" + path}})
	return b
}

func (b *Builder) AddFields(fields bson.D) *Builder {
	if fields == nil {
		b.errs = append(b.errs, errors.New("addFields: nil fields"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$addFields", Value: fields}})
	return b
}

func (b *Builder) Group(group bson.D) *Builder {
	if group == nil {
		b.errs = append(b.errs, errors.New("group: nil group"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$group", Value: group}})
	return b
}

func (b *Builder) Sort(field string, order int) *Builder {
	if field == "" {
		b.errs = append(b.errs, errors.New("sort: empty field"))
		return b
	}
	if order != 1 && order != -1 {
		b.errs = append(b.errs, fmt.Errorf("sort: order must be 1 or -1, got %d", order))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: order}}}})
	return b
}

func (b *Builder) Project(projection bson.D) *Builder {
	if projection == nil {
		b.errs = append(b.errs, errors.New("project: nil projection"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$project", Value: projection}})
	return b
}

func (b *Builder) Skip(n int64) *Builder {
	if n < 0 {
		b.errs = append(b.errs, fmt.Errorf("skip: negative count %d", n))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$skip", Value: n}})
	return b
}

func (b *Builder) Limit(n int64) *Builder {
	if n < 1 {
		b.errs = append(b.errs, fmt.Errorf("limit: non-positive count %d", n))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$limit", Value: n}})
	return b
}

func (b *Builder) Count(field string) *Builder {
	if field == "" {
		b.errs = append(b.errs, errors.New("count: empty field"))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$count", Value: field}})
	return b
}

// FacetPage computes the page slice and the total count over the same
// matched and sorted set in a single pass: one facet branch skips
// (page-1)*limit and limits, the other counts.
func (b *Builder) FacetPage(itemsField, countField string, page, limit int64) *Builder {
	if itemsField == "" || countField == "" {
		b.errs = append(b.errs, errors.New("facetPage: empty field name"))
		return b
	}
	if page < 1 {
		b.errs = append(b.errs, fmt.Errorf("facetPage: page must be positive, got %d", page))
		return b
	}
	if limit < 1 {
		b.errs = append(b.errs, fmt.Errorf("facetPage: limit must be positive, got %d", limit))
		return b
	}
	b.stages = append(b.stages, bson.D{{Key: "$facet", Value: bson.D{
		{Key: itemsField, Value: mongo.Pipeline{
			bson.D{{Key: "$skip", Value: (page - 1) * limit}},
			bson.D{{Key: "$limit", Value: limit}},
		}},
		{Key: countField, Value: mongo.Pipeline{
			bson.D{{Key: "$count", Value: countField}},
		}},
	}}})
	return b
}

func (b *Builder) Build() (mongo.Pipeline, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if len(b.stages) == 0 {
		return nil, errors.New("empty pipeline")
	}
	return b.stages, nil
}

// TotalPages is the page count for a paginated result set.
func TotalPages(totalCount, limit int64) int64 {
	if limit < 1 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}
