package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// newestFirst is the sort used by every listing. _id breaks ties between
// documents created within the same millisecond.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// containsFold matches value as a case-insensitive literal substring.
func containsFold(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

func userListFilter(f ports.UserFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": containsFold(f.Search)},
			bson.M{"email": containsFold(f.Search)},
		}
	}
	return filter
}

// postListFilter returns ok=false when AuthorID cannot match any document.
func postListFilter(f ports.PostFilter) (bson.M, bool) {
	filter := bson.M{}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	if f.AuthorID != "" {
		oid, err := primitive.ObjectIDFromHex(f.AuthorID)
		if err != nil {
			return nil, false
		}
		filter["author_id"] = oid
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": containsFold(f.Search)},
			bson.M{"content": containsFold(f.Search)},
		}
	}
	return filter, true
}

func activityListFilter(f ports.ActivityFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	return filter
}

// pageOptions applies newest-first ordering and skip/limit. A non-positive
// limit returns every document.
func pageOptions(pageNum, limit int) *options.FindOptions {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetSkip(int64(domain.Skip(pageNum, limit))).SetLimit(int64(limit))
	}
	return opts
}

func userSet(patch domain.UserPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	return set
}

func postSet(patch domain.PostPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}
	return set
}

// objectIDs converts hex ids, silently skipping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
