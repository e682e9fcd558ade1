package avatar_test

import (
	"strconv"

	"github.com/local-avatar-api/internal/avatar"
	"github.com/local-avatar-api/internal/mocks"
	"github.com/local-avatar-api/internal/models"
	"github.com/rs/zerolog"
)

type fixture struct {
	users    *mocks.MockUserRepository
	comments *mocks.MockCommentRepository
	media    *mocks.MockMediaStore
	options  *mocks.MockSiteOptions
	policy   *mocks.MockPolicy
	hooks    *avatar.Hooks
}

func newFixture() *fixture {
	return &fixture{
		users:    mocks.NewMockUserRepository(),
		comments: mocks.NewMockCommentRepository(),
		media:    mocks.NewMockMediaStore(),
		options:  mocks.NewMockSiteOptions(),
		policy:   mocks.NewMockPolicy(),
		hooks:    avatar.NewHooks(zerolog.Nop()),
	}
}

func (f *fixture) resolver() *avatar.Resolver {
	return avatar.NewResolver(avatar.Deps{
		Hooks:    f.hooks,
		Users:    f.users,
		Comments: f.comments,
		Media:    f.media,
		Options:  f.options,
		Policy:   f.policy,
		Log:      zerolog.Nop(),
	})
}

// withCustomAvatar adds user id whose custom avatar is attachment att.
func (f *fixture) withCustomAvatar(id, att int64) *models.User {
	u := f.users.Add(&models.User{ID: id, Email: "user" + strconv.FormatInt(id, 10) + "@example.com"})
	f.users.SetMeta(id, avatar.DefaultMetadataKey, strconv.FormatInt(att, 10))
	f.media.Known[att] = true
	return u
}

func (f *fixture) collaboratorCalls() int {
	return f.users.Calls() + f.comments.Calls + f.media.Calls + f.options.Calls + f.policy.Calls
}
