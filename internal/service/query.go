package service

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/commerce-service/internal/domain/dto"
)

// sortFor builds the MongoDB sort from a normalized list query.
func sortFor(q dto.ListQuery) bson.D {
	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: q.SortBy, Value: order}}
}

// baseCacheQuery captures the shared list parameters for cache keys.
func baseCacheQuery(q dto.ListQuery) map[string]any {
	return map[string]any{
		"search":    q.Search,
		"page":      q.Page,
		"limit":     q.Limit,
		"sortBy":    q.SortBy,
		"sortOrder": q.SortOrder,
		"fields":    q.Fields,
		"is_active": string(q.IsActive),
	}
}

// searchFilter adds a case-insensitive substring match on field. The
// input is quoted so regex metacharacters match literally.
func searchFilter(filter bson.M, field, search string) {
	if search != "" {
		filter[field] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}
}

// boolFilter adds an equality match when the tri-state param is set.
func boolFilter(filter bson.M, field string, p dto.BoolParam) {
	if v := p.Value(); v != nil {
		filter[field] = *v
	}
}

// idFilter adds an ObjectID equality match. Returns an error for a
// malformed id so the bad parameter surfaces as a 400, not an empty
// result.
func idFilter(filter bson.M, field, raw, resource string) error {
	if raw == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return InvalidIDError(resource)
	}
	filter[field] = oid
	return nil
}

// setField records a pointer-typed patch field into a $set document.
func setField[V any](set bson.M, key string, v *V) {
	if v != nil {
		set[key] = *v
	}
}

// touchUpdated stamps updated_at on a $set document.
func touchUpdated(set bson.M) bson.M {
	set["updated_at"] = time.Now()
	return set
}
