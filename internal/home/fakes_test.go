package home

import (
	"context"
	"sync"

	"checkdev-site/internal/category"
	"checkdev-site/internal/interview"
	"checkdev-site/internal/profile"
	"checkdev-site/internal/topic"
	"checkdev-site/internal/user"
	"checkdev-site/internal/utils"
)

// callLog counts calls per key; safe for the concurrent fan-out.
type callLog struct {
	mu    sync.Mutex
	calls map[int]int
}

func (c *callLog) record(key int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[int]int)
	}
	c.calls[key]++
}

func (c *callLog) count(key int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func (c *callLog) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

type fakeCategories struct {
	list []category.Category
	err  error
}

func (f *fakeCategories) GetMostPopular(context.Context) ([]category.Category, error) {
	return f.list, f.err
}

type fakeTopics struct {
	callLog
	byCategory map[int][]topic.Topic
	err        error
}

func (f *fakeTopics) GetByCategory(_ context.Context, categoryID int) ([]topic.Topic, error) {
	f.record(categoryID)
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[categoryID], nil
}

type fakeInterviews struct {
	callLog
	list []interview.Interview
	err  error
}

func (f *fakeInterviews) GetByType(_ context.Context, interviewType int) ([]interview.Interview, error) {
	f.record(interviewType)
	return f.list, f.err
}

type fakeProfiles struct {
	callLog
	byID map[int]profile.Profile
	err  error
}

func (f *fakeProfiles) GetProfileByID(_ context.Context, id int) (utils.Optional[profile.Profile], error) {
	f.record(id)
	if f.err != nil {
		return utils.None[profile.Profile](), f.err
	}
	if p, ok := f.byID[id]; ok {
		return utils.Some(p), nil
	}
	return utils.None[profile.Profile](), nil
}

type fakeAuth struct {
	callLog
	byID map[int]user.UserInfo
	err  error
}

func (f *fakeAuth) GetUserInfo(_ context.Context, userID int) (utils.Optional[user.UserInfo], error) {
	f.record(userID)
	if f.err != nil {
		return utils.None[user.UserInfo](), f.err
	}
	if info, ok := f.byID[userID]; ok {
		return utils.Some(info), nil
	}
	return utils.None[user.UserInfo](), nil
}

type fakeNotifications struct {
	byUser map[int][]int
	err    error
}

func (f *fakeNotifications) GetSubscribedCategories(_ context.Context, userID int) ([]int, error) {
	return f.byUser[userID], f.err
}

// blockingCategories waits for the context to end.
type blockingCategories struct{}

func (blockingCategories) GetMostPopular(ctx context.Context) ([]category.Category, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
