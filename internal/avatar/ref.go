package avatar

import (
	"math"

	"github.com/local-avatar-api/internal/models"
)

// UserRef identifies whose avatar is requested. The set of variants is closed:
// UserID, Email, UserRecord, Post, CommentRecord and CommentID.
type UserRef interface {
	userRef()
}

// UserID references an account by numeric id. Negative ids use their
// absolute value.
type UserID int64

// Email references an account by address. Only legacy gravatar-hash
// addresses (containing "@md5.gravatar.com") resolve to a user.
type Email string

// UserRecord references an already loaded account.
type UserRecord struct{ User *models.User }

// Post references the author of a content record.
type Post struct{ Article *models.Article }

// CommentRecord references the author of a loaded comment.
type CommentRecord struct{ Comment *models.Comment }

// CommentID references the author of a comment by comment id.
type CommentID int64

func (UserID) userRef()        {}
func (Email) userRef()         {}
func (UserRecord) userRef()    {}
func (Post) userRef()          {}
func (CommentRecord) userRef() {}
func (CommentID) userRef()     {}

// CommentIdentifier is implemented by values that carry a comment id. Ref
// gives it precedence over every other shape the value may also have.
type CommentIdentifier interface {
	CommentIdentifier() int64
}

// CommentIdentifier implements CommentIdentifier.
func (c CommentID) CommentIdentifier() int64 { return int64(c) }

// Ref maps an untyped identity value onto a UserRef. Unknown shapes, nil
// pointers and non-finite numbers map to nil, which resolves to no user.
func Ref(v any) UserRef {
	if c, ok := v.(CommentIdentifier); ok {
		return CommentID(c.CommentIdentifier())
	}

	switch x := v.(type) {
	case UserRef:
		return x
	case *models.User:
		if x != nil {
			return UserRecord{User: x}
		}
	case *models.Article:
		if x != nil {
			return Post{Article: x}
		}
	case *models.Comment:
		if x != nil {
			return CommentRecord{Comment: x}
		}
	case int:
		return UserID(x)
	case int32:
		return UserID(x)
	case int64:
		return UserID(x)
	case uint:
		return UserID(x)
	case uint32:
		return UserID(x)
	case uint64:
		return UserID(x)
	case float64:
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			return UserID(x)
		}
	case string:
		if n, ok := parseNumeric(x); ok {
			return UserID(n)
		}
		return Email(x)
	}
	return nil
}

func absID(id int64) int64 {
	if id < 0 {
		return -id
	}
	return id
}
