package referralbundle

import (
	"net/http"

	"github.com/jinzhu/gorm"

	"hopehouse_backend/app/core"
)

type ReferralBundle struct {
	routes []core.Route
}

func NewReferralBundle(ormDB *gorm.DB, store *SheetStore) core.Bundle {
	hc := NewReferralController(ormDB, store)

	r := []core.Route{
		core.Route{Method: http.MethodPost, Path: "/referrals", Handler: hc.SubmitReferralHandler},
		core.Route{Method: http.MethodGet, Path: "/referrals", Handler: hc.InfoHandler},
		core.Route{Method: http.MethodGet, Path: "/referrals/list", Handler: hc.GetReferralsHandler},
		core.Route{Method: http.MethodGet, Path: "/referrals/export", Handler: hc.ExportReferralsHandler},
		core.Route{Method: http.MethodGet, Path: "/mailinglist", Handler: hc.GetMailingListHandler},

		core.Route{Method: http.MethodOptions, Path: "/{rest:.*}", Handler: hc.OptionsHandler},
	}

	return &ReferralBundle{
		routes: r,
	}
}

// GetRoutes implement interface core.Bundle
func (b *ReferralBundle) GetRoutes() []core.Route {
	return b.routes
}
