package home

import (
	"checkdev-site/internal/category"
	"checkdev-site/internal/interview"
	"checkdev-site/internal/profile"
	"checkdev-site/internal/topic"
	"checkdev-site/internal/user"
	"checkdev-site/internal/utils"
)

// ViewName is the template rendered for the home page.
const ViewName = "index"

// Attribute names consumed by the rendering layer.
const (
	AttrCategories    = "categories"
	AttrTopics        = "topics"
	AttrBreadcrumbs   = "breadcrumbs"
	AttrUserInfo      = "userInfo"
	AttrNewInterviews = "new_interviews"
	AttrProfiles      = "profiles"
	AttrSubscriptions = "subscriptions"
	AttrCanManage     = "canManage"
)

type Breadcrumb struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// TopicGroup holds the topics of one category.
type TopicGroup struct {
	Category category.Category `json:"category"`
	Topics   []topic.Topic     `json:"topics"`
}

// RequestContext describes who is asking for the page.
type RequestContext struct {
	UserID utils.Optional[int]
}

func Anonymous() RequestContext {
	return RequestContext{}
}

func ForUser(id int) RequestContext {
	return RequestContext{UserID: utils.Some(id)}
}

type ViewModel struct {
	Categories    []category.Category                     `json:"categories"`
	Topics        []TopicGroup                            `json:"topics"`
	Breadcrumbs   []Breadcrumb                            `json:"breadcrumbs"`
	UserInfo      utils.Optional[user.UserInfo]           `json:"userInfo"`
	NewInterviews []interview.Interview                   `json:"new_interviews"`
	Profiles      map[int]utils.Optional[profile.Profile] `json:"profiles"`
	Subscriptions []int                                   `json:"subscriptions"`
	CanManage     bool                                    `json:"canManage"`
}

// Attributes flattens the view model into named template attributes. Every
// key is always present; an absent user maps to nil.
func (vm *ViewModel) Attributes() map[string]any {
	var userInfo any
	if info, ok := vm.UserInfo.Get(); ok {
		userInfo = info
	}

	return map[string]any{
		AttrCategories:    vm.Categories,
		AttrTopics:        vm.Topics,
		AttrBreadcrumbs:   vm.Breadcrumbs,
		AttrUserInfo:      userInfo,
		AttrNewInterviews: vm.NewInterviews,
		AttrProfiles:      vm.Profiles,
		AttrSubscriptions: vm.Subscriptions,
		AttrCanManage:     vm.CanManage,
	}
}
