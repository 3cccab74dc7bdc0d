// Package presenters builds the view models served by the HTTP layer.
//
// Every presenter reads the collections it needs from a store.Store, joins
// them, runs them through the query pipeline and returns a flat,
// JSON-serializable structure. Presenters never write to the store: the
// action methods are stubs that validate, log and acknowledge.
package presenters

import (
	"learnhub/backend/store"
	"learnhub/backend/utils"
)

// Options carries the paging limits shared by the listing presenters.
type Options struct {
	CatalogPageSize int
	ListPageSize    int
	MaxPageSize     int
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{CatalogPageSize: 12, ListPageSize: 10, MaxPageSize: 50}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CatalogPageSize < 1 {
		o.CatalogPageSize = d.CatalogPageSize
	}
	if o.ListPageSize < 1 {
		o.ListPageSize = d.ListPageSize
	}
	if o.MaxPageSize < 1 {
		o.MaxPageSize = d.MaxPageSize
	}
	return o
}

type base struct {
	store store.Store
	log   *utils.Logger
	opts  Options
}

func newBase(s store.Store, log *utils.Logger, opts Options) base {
	if log == nil {
		log = utils.NopLogger()
	}
	return base{store: s, log: log, opts: opts.withDefaults()}
}

// Presenters groups one presenter per feature area.
type Presenters struct {
	Catalog      *CatalogPresenter
	MyCourses    *MyCoursesPresenter
	Wishlist     *WishlistPresenter
	Leaderboard  *LeaderboardPresenter
	Achievements *AchievementsPresenter
	Dashboard    *DashboardPresenter
	Analytics    *AnalyticsPresenter
	Reviews      *ReviewsPresenter
	Earnings     *EarningsPresenter
	Community    *CommunityPresenter
	Certificates *CertificatesPresenter
	Settings     *SettingsPresenter
	Content      *ContentPresenter
	Auth         *AuthPresenter
}

// New wires every presenter to one store and logger.
func New(s store.Store, log *utils.Logger, opts Options, auth AuthOptions) *Presenters {
	b := newBase(s, log, opts)
	return &Presenters{
		Catalog:      &CatalogPresenter{base: b},
		MyCourses:    &MyCoursesPresenter{base: b},
		Wishlist:     &WishlistPresenter{base: b},
		Leaderboard:  &LeaderboardPresenter{base: b},
		Achievements: &AchievementsPresenter{base: b},
		Dashboard:    &DashboardPresenter{base: b},
		Analytics:    &AnalyticsPresenter{base: b},
		Reviews:      &ReviewsPresenter{base: b},
		Earnings:     &EarningsPresenter{base: b},
		Community:    &CommunityPresenter{base: b},
		Certificates: &CertificatesPresenter{base: b},
		Settings:     &SettingsPresenter{base: b},
		Content:      &ContentPresenter{base: b},
		Auth:         &AuthPresenter{base: b, auth: auth},
	}
}
